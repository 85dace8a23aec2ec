package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journey/internal/llm"
	"github.com/aebalz/mindful-journey/internal/model"
)

func chatServer(t *testing.T, status int, content string, seen *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			io.WriteString(w, `{"error":{"message":"nope"}}`)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_AnalyzeMood(t *testing.T) {
	var seen chatRequest
	srv := chatServer(t, http.StatusOK, `{"reply":"I hear you.","mood":"Anxious","confidence":0.8,"suggested_quote":"This too shall pass."}`, &seen)
	c := NewClient("test-key", "", srv.URL, time.Second)

	got, err := c.AnalyzeMood(context.Background(), "exams tomorrow")
	require.NoError(t, err)
	assert.Equal(t, model.ProviderMoodAnxious, got.Mood)
	assert.Equal(t, "I hear you.", got.Reply)

	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Contains(t, seen.Messages[0].Content, "Always respond with valid JSON only")
	assert.Equal(t, "exams tomorrow", seen.Messages[1].Content)
	assert.Equal(t, "json_object", seen.ResponseFormat["type"])
	assert.Equal(t, DefaultModel, seen.Model)
}

func TestClient_GenerateAffirmation(t *testing.T) {
	var seen chatRequest
	srv := chatServer(t, http.StatusOK, `{"affirmation":"Peace begins with you."}`, &seen)
	got, err := NewClient("test-key", "gpt-4o-mini", srv.URL, time.Second).GenerateAffirmation(context.Background(), "feeling calm and peaceful")
	require.NoError(t, err)
	assert.Equal(t, "Peace begins with you.", got)
	assert.Equal(t, "Mood: feeling calm and peaceful", seen.Messages[1].Content)
}

func TestClient_ClientErrorsArePermanent(t *testing.T) {
	srv := chatServer(t, http.StatusUnauthorized, "", nil)
	_, err := NewClient("test-key", "", srv.URL, time.Second).AnalyzeMood(context.Background(), "hi")
	var pErr *llm.PermanentError
	assert.True(t, errors.As(err, &pErr))
}

func TestClient_ServerErrorsAreRetryable(t *testing.T) {
	srv := chatServer(t, http.StatusBadGateway, "", nil)
	_, err := NewClient("test-key", "", srv.URL, time.Second).AnalyzeMood(context.Background(), "hi")
	require.Error(t, err)
	var pErr *llm.PermanentError
	assert.False(t, errors.As(err, &pErr))
}

func TestClient_EmptyChoices(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "", nil)
	_, err := NewClient("test-key", "", srv.URL, time.Second).AnalyzeMood(context.Background(), "hi")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

// Both backends share one fallback: a malformed answer from this one must
// come out of the MoodAnalyst exactly like any other failure.
func TestClient_MalformedAnswerFallsBack(t *testing.T) {
	answers := map[string]string{
		"out of range":       `{"reply":"ok","mood":"Elated","confidence":3}`,
		"missing confidence": `{"reply":"hi","mood":"Anxious","suggested_quote":"q"}`,
		"missing quote":      `{"reply":"hi","mood":"Anxious","confidence":0.8}`,
	}
	for name, answer := range answers {
		t.Run(name, func(t *testing.T) {
			srv := chatServer(t, http.StatusOK, answer, nil)
			analyst := llm.NewMoodAnalyst(NewClient("test-key", "", srv.URL, time.Second), "openai", zerolog.Nop())

			got, err := analyst.Analyze(context.Background(), "hi")
			require.NoError(t, err)
			assert.Equal(t, llm.FallbackAnalysis(), got)
		})
	}
}
