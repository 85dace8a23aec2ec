package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journey/internal/model"
)

// withFileStore points the CLI at a seeded file store and an assistant with no key.
func withFileStore(t *testing.T, logs []model.MoodLog) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "logs.json")
	data, err := json.Marshal(logs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("STORAGE_PATH", path)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("APP_TIMEZONE", "")
	return dir
}

func seed() []model.MoodLog {
	now := time.Now()
	return []model.MoodLog{
		{ID: "b", Date: now.Format(time.RFC3339Nano), Mood: model.MoodCalm, Journal: "quiet"},
		{ID: "a", Date: now.AddDate(0, 0, -1).Format(time.RFC3339Nano), Mood: model.MoodSad},
	}
}

func TestStreakCommand(t *testing.T) {
	withFileStore(t, seed())

	var out bytes.Buffer
	app := newCLI()
	app.Writer = &out
	require.NoError(t, app.Run([]string{"mindful-journey", "streak"}))

	assert.Contains(t, out.String(), "today:          calm")
	assert.Contains(t, out.String(), "current streak: 2")
	assert.Contains(t, out.String(), "[x] First Step")
	assert.Contains(t, out.String(), "[ ] 7-Day Mindfulness")
}

func TestExportCommand(t *testing.T) {
	dir := withFileStore(t, seed())
	target := filepath.Join(dir, "export.csv")

	app := newCLI()
	app.Writer = &bytes.Buffer{}
	require.NoError(t, app.Run([]string{"mindful-journey", "export", "--format", "csv", "--output", target}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Date,Mood,Journal", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "a,"), "oldest first")
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	withFileStore(t, seed())
	app := newCLI()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"mindful-journey", "export", "--format", "xml"})
	assert.Error(t, err)
}
