package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journey/internal/llm"
	"github.com/aebalz/mindful-journey/internal/model"
	"github.com/aebalz/mindful-journey/internal/service"
	"github.com/aebalz/mindful-journey/internal/streak"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMoods struct {
	logs    []model.MoodLog
	today   *model.MoodLog
	streak  int
	err     error
	checked []model.Mood
}

func (f *fakeMoods) All() []model.MoodLog { return f.logs }
func (f *fakeMoods) AddOrReplaceToday(ctx context.Context, mood model.Mood, journal string) (model.MoodLog, error) {
	return model.MoodLog{}, nil
}
func (f *fakeMoods) TodayLog() (*model.MoodLog, error) { return f.today, f.err }
func (f *fakeMoods) Streak() (int, error)              { return f.streak, f.err }
func (f *fakeMoods) History() ([]model.MoodLog, error) { return f.logs, f.err }
func (f *fakeMoods) Chart() ([]streak.ChartPoint, error) {
	return []streak.ChartPoint{{Date: "2026-03-15", Day: "Sun", Mood: model.MoodCalm, Value: 4}}, f.err
}
func (f *fakeMoods) Summary() (streak.Summary, error) {
	return streak.Summary{CurrentStreak: f.streak}, f.err
}
func (f *fakeMoods) Export(format string) ([]byte, string, error) {
	if format == "csv" {
		return []byte("ID,Date,Mood,Journal\n"), "text/csv", nil
	}
	return nil, "", service.ErrUnsupportedFormat
}

type fakeChat struct {
	moods *fakeMoods
}

func (f *fakeChat) Chat(ctx context.Context, text string) (service.ChatReply, error) {
	return service.ChatReply{Reply: "heard: " + text, DetectedMood: model.ProviderMoodCalm}, nil
}
func (f *fakeChat) Analyze(ctx context.Context, text string) (model.MoodAnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return model.MoodAnalysisResult{}, llm.ErrEmptyText
	}
	return llm.FallbackAnalysis(), nil
}
func (f *fakeChat) CheckIn(ctx context.Context, mood model.Mood, journal string) (service.CheckInResult, error) {
	if _, err := model.ParseMood(string(mood)); err != nil {
		return service.CheckInResult{}, err
	}
	f.moods.checked = append(f.moods.checked, mood)
	aff, _ := f.Affirm(ctx, mood)
	return service.CheckInResult{Log: model.MoodLog{ID: "new", Mood: mood, Journal: journal}, AffirmationResult: aff}, nil
}
func (f *fakeChat) Affirm(ctx context.Context, mood model.Mood) (service.AffirmationResult, error) {
	if _, err := model.ParseMood(string(mood)); err != nil {
		return service.AffirmationResult{}, err
	}
	if mood == model.MoodExtremelyLow {
		return service.AffirmationResult{Crisis: llm.CrisisResources}, nil
	}
	return service.AffirmationResult{Affirmation: "keep going"}, nil
}

// server runs the same request through a gin router and a fiber app.
type server struct {
	name string
	do   func(t *testing.T, method, path, body string) (int, http.Header, []byte)
}

func servers(moods *fakeMoods) []server {
	chat := &fakeChat{moods: moods}
	mh := NewMoodHandler(moods, chat)
	ch := NewChatHandler(chat)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/logs", mh.ListLogsGin)
	api.POST("/logs", mh.CheckInGin)
	api.GET("/logs/today", mh.TodayGin)
	api.GET("/streak", mh.StreakGin)
	api.GET("/history", mh.HistoryGin)
	api.GET("/summary", mh.SummaryGin)
	api.GET("/export", mh.ExportGin)
	api.POST("/chat", ch.ChatGin)
	api.POST("/analyze", ch.AnalyzeGin)
	api.POST("/affirmations", ch.AffirmationGin)

	app := fiber.New()
	fapi := app.Group("/api/v1")
	fapi.Get("/logs", mh.ListLogsFiber)
	fapi.Post("/logs", mh.CheckInFiber)
	fapi.Get("/logs/today", mh.TodayFiber)
	fapi.Get("/streak", mh.StreakFiber)
	fapi.Get("/history", mh.HistoryFiber)
	fapi.Get("/summary", mh.SummaryFiber)
	fapi.Get("/export", mh.ExportFiber)
	fapi.Post("/chat", ch.ChatFiber)
	fapi.Post("/analyze", ch.AnalyzeFiber)
	fapi.Post("/affirmations", ch.AffirmationFiber)

	newRequest := func(method, path, body string) *http.Request {
		var reader io.Reader
		if body != "" {
			reader = bytes.NewBufferString(body)
		}
		req := httptest.NewRequest(method, path, reader)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		return req
	}

	return []server{
		{name: "gin", do: func(t *testing.T, method, path, body string) (int, http.Header, []byte) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, newRequest(method, path, body))
			return w.Code, w.Header(), w.Body.Bytes()
		}},
		{name: "fiber", do: func(t *testing.T, method, path, body string) (int, http.Header, []byte) {
			resp, err := app.Test(newRequest(method, path, body))
			require.NoError(t, err)
			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			return resp.StatusCode, resp.Header, data
		}},
	}
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestStreakAndToday(t *testing.T) {
	moods := &fakeMoods{streak: 3}
	for _, s := range servers(moods) {
		t.Run(s.name, func(t *testing.T) {
			code, _, body := s.do(t, http.MethodGet, "/api/v1/streak", "")
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, 3, decode[StreakResponse](t, body).Streak)

			code, _, body = s.do(t, http.MethodGet, "/api/v1/logs/today", "")
			assert.Equal(t, http.StatusNotFound, code)
			assert.Equal(t, CodeNotFound, decode[ErrorResponse](t, body).Code)
		})
	}
}

func TestIntegrityErrorsAre500(t *testing.T) {
	integrity := &streak.IntegrityError{LogID: "x", Field: "mood", Value: "meh", Err: model.ErrUnknownMood}
	moods := &fakeMoods{err: integrity}
	for _, s := range servers(moods) {
		t.Run(s.name, func(t *testing.T) {
			for _, path := range []string{"/api/v1/streak", "/api/v1/logs/today", "/api/v1/history", "/api/v1/summary"} {
				code, _, body := s.do(t, http.MethodGet, path, "")
				assert.Equal(t, http.StatusInternalServerError, code, path)
				assert.Equal(t, CodeDataIntegrity, decode[ErrorResponse](t, body).Code, path)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	moods := &fakeMoods{logs: []model.MoodLog{{ID: "a", Date: "2026-03-15T09:00:00+05:30", Mood: model.MoodCalm}}}
	for _, s := range servers(moods) {
		t.Run(s.name, func(t *testing.T) {
			code, _, body := s.do(t, http.MethodGet, "/api/v1/history", "")
			require.Equal(t, http.StatusOK, code)
			res := decode[HistoryResponse](t, body)
			assert.Equal(t, moods.logs, res.Logs)
			require.Len(t, res.Chart, 1)
			assert.InDelta(t, 4.0, res.Chart[0].Value, 1e-9)
		})
	}
}

func TestCheckIn(t *testing.T) {
	for _, s := range servers(&fakeMoods{}) {
		t.Run(s.name, func(t *testing.T) {
			code, _, body := s.do(t, http.MethodPost, "/api/v1/logs", `{"mood":"calm","journal":"tea"}`)
			assert.Equal(t, http.StatusCreated, code)
			res := decode[service.CheckInResult](t, body)
			assert.Equal(t, "tea", res.Log.Journal)
			assert.Equal(t, "keep going", res.Affirmation)

			code, _, body = s.do(t, http.MethodPost, "/api/v1/logs", `{"mood":"extremely-low"}`)
			assert.Equal(t, http.StatusCreated, code)
			res = decode[service.CheckInResult](t, body)
			assert.Empty(t, res.Affirmation)
			assert.Equal(t, llm.CrisisResources, res.Crisis)

			code, _, body = s.do(t, http.MethodPost, "/api/v1/logs", `{"mood":"Ecstatic"}`)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, CodeUnknownMood, decode[ErrorResponse](t, body).Code)

			code, _, body = s.do(t, http.MethodPost, "/api/v1/logs", `{"journal":"no mood"}`)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, CodeValidation, decode[ErrorResponse](t, body).Code)
		})
	}
}

func TestChatAndAnalyze(t *testing.T) {
	for _, s := range servers(&fakeMoods{}) {
		t.Run(s.name, func(t *testing.T) {
			code, _, body := s.do(t, http.MethodPost, "/api/v1/chat", `{"text":"long day"}`)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "heard: long day", decode[service.ChatReply](t, body).Reply)

			code, _, _ = s.do(t, http.MethodPost, "/api/v1/chat", `{"text":""}`)
			assert.Equal(t, http.StatusBadRequest, code)

			code, _, body = s.do(t, http.MethodPost, "/api/v1/analyze", `{"text":"   "}`)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, CodeEmptyText, decode[ErrorResponse](t, body).Code)

			code, _, body = s.do(t, http.MethodPost, "/api/v1/analyze", `{"text":"meh"}`)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, llm.FallbackAnalysis(), decode[model.MoodAnalysisResult](t, body))
		})
	}
}

func TestAffirmations(t *testing.T) {
	for _, s := range servers(&fakeMoods{}) {
		t.Run(s.name, func(t *testing.T) {
			code, _, body := s.do(t, http.MethodPost, "/api/v1/affirmations", `{"mood":"sad"}`)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "keep going", decode[service.AffirmationResult](t, body).Affirmation)

			code, _, _ = s.do(t, http.MethodPost, "/api/v1/affirmations", `{"mood":"SAD"}`)
			assert.Equal(t, http.StatusBadRequest, code)
		})
	}
}

func TestExport(t *testing.T) {
	for _, s := range servers(&fakeMoods{}) {
		t.Run(s.name, func(t *testing.T) {
			code, header, body := s.do(t, http.MethodGet, "/api/v1/export?format=csv", "")
			assert.Equal(t, http.StatusOK, code)
			assert.True(t, strings.HasPrefix(header.Get("Content-Type"), "text/csv"))
			assert.Contains(t, header.Get("Content-Disposition"), "mindful-journey-export.csv")
			assert.Equal(t, "ID,Date,Mood,Journal\n", string(body))

			code, _, body = s.do(t, http.MethodGet, "/api/v1/export?format=xml", "")
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, CodeUnsupportedFormat, decode[ErrorResponse](t, body).Code)
		})
	}
}

func TestHealth(t *testing.T) {
	healthy := NewHealthHandler("file", nil)
	broken := NewHealthHandler("redis", func(ctx context.Context) error { return errors.New("connection refused") })

	router := gin.New()
	router.GET("/ok", healthy.CheckHealthGin)
	router.GET("/down", broken.CheckHealthGin)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	app := fiber.New()
	app.Get("/down", broken.CheckHealthFiber)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/down", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	res := decode[HealthCheckResponse](t, data)
	assert.Equal(t, "redis", res.StorageDriver)
	assert.Contains(t, res.StorageStatus, "connection refused")
}
