package repository

import (
	"context"
	"errors"

	"github.com/aebalz/mindful-journey/internal/model"
)

// DefaultStorageKey names the blob holding the mood log collection.
const DefaultStorageKey = "mindful-journey-data"

// ErrCorruptBlob is returned when the stored collection cannot be decoded.
var ErrCorruptBlob = errors.New("stored mood log collection is not valid JSON")

// LogStore persists the whole mood log collection. Load reads it in full and
// Save overwrites it in full; the last writer wins.
type LogStore interface {
	Load(ctx context.Context) ([]model.MoodLog, error)
	Save(ctx context.Context, logs []model.MoodLog) error
}
