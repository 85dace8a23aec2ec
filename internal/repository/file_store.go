package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/aebalz/mindful-journey/internal/model"
)

// FileLogStore keeps the collection as a single JSON document on local disk.
type FileLogStore struct {
	Path string
}

// NewFileLogStore creates a FileLogStore writing to path.
func NewFileLogStore(path string) *FileLogStore {
	return &FileLogStore{Path: path}
}

// Load reads the collection. A missing file is an empty collection.
func (s *FileLogStore) Load(ctx context.Context) ([]model.MoodLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.MoodLog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return decodeLogs(data)
}

// Save replaces the file contents. The document is written to a temporary
// file first so a crash never leaves a half-written collection behind.
func (s *FileLogStore) Save(ctx context.Context, logs []model.MoodLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeLogs(logs)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace %s: %w", s.Path, err)
	}
	return nil
}

func encodeLogs(logs []model.MoodLog) ([]byte, error) {
	if logs == nil {
		logs = []model.MoodLog{}
	}
	data, err := json.Marshal(logs)
	if err != nil {
		return nil, fmt.Errorf("encode mood logs: %w", err)
	}
	return data, nil
}

func decodeLogs(data []byte) ([]model.MoodLog, error) {
	if len(data) == 0 {
		return []model.MoodLog{}, nil
	}
	var logs []model.MoodLog
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	if logs == nil {
		logs = []model.MoodLog{}
	}
	return logs, nil
}
