package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journey/internal/model"
)

func sampleLogs() []model.MoodLog {
	return []model.MoodLog{
		{ID: "b", Date: "2026-03-15T09:00:00+05:30", Mood: model.MoodHappy, Journal: "sunny"},
		{ID: "a", Date: "2026-03-14T21:00:00+05:30", Mood: model.MoodSad},
	}
}

func TestFileLogStore_MissingFileIsEmpty(t *testing.T) {
	store := NewFileLogStore(filepath.Join(t.TempDir(), "logs.json"))
	logs, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.NotNil(t, logs)
}

func TestFileLogStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs.json")
	store := NewFileLogStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleLogs()))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleLogs(), got)

	require.NoError(t, store.Save(ctx, sampleLogs()[:1]))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileLogStore_WritesExactFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.json")
	store := NewFileLogStore(path)
	require.NoError(t, store.Save(context.Background(), sampleLogs()[1:]))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","date":"2026-03-14T21:00:00+05:30","mood":"sad","journal":""}]`, string(raw))
}

func TestFileLogStore_CorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileLogStore(path).Load(context.Background())
	assert.True(t, errors.Is(err, ErrCorruptBlob))
}

func TestFileLogStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFileLogStore(filepath.Join(t.TempDir(), "logs.json"))
	assert.ErrorIs(t, store.Save(ctx, sampleLogs()), context.Canceled)
}
