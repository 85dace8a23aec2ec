package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journey/internal/model"
)

const (
	// FallbackReply is shown when no backend could answer.
	FallbackReply = "I'm having a little trouble understanding right now, but please know that your feelings are valid. It's okay to not be okay."
	// FallbackQuote accompanies FallbackReply.
	FallbackQuote = "Be gentle with yourself, you're doing the best you can."
	// FallbackConfidence is reported with the fallback answer.
	FallbackConfidence = 0.1
)

// ErrEmptyText is returned for blank input; nothing is sent to the model.
var ErrEmptyText = errors.New("text must not be empty")

var fallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "llm_fallbacks_total",
		Help: "Number of assistant answers replaced by the fixed fallback.",
	},
	[]string{"capability", "provider"},
)

// FallbackAnalysis returns the fixed answer used when inference fails.
func FallbackAnalysis() model.MoodAnalysisResult {
	return model.MoodAnalysisResult{
		Reply:          FallbackReply,
		Mood:           model.ProviderMoodNeutral,
		Confidence:     FallbackConfidence,
		SuggestedQuote: FallbackQuote,
	}
}

// MoodAnalyst wraps a MoodInferenceProvider with the fallback contract:
// callers always get a well-formed result, never a provider error.
type MoodAnalyst struct {
	provider MoodInferenceProvider
	name     string
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewMoodAnalyst creates a MoodAnalyst. name labels logs and metrics.
func NewMoodAnalyst(provider MoodInferenceProvider, name string, logger zerolog.Logger) *MoodAnalyst {
	return &MoodAnalyst{
		provider: provider,
		name:     name,
		validate: validator.New(),
		logger:   logger.With().Str("component", "mood_analyst").Str("provider", name).Logger(),
	}
}

// Analyze infers the mood of text. Only blank input is reported as an error.
func (a *MoodAnalyst) Analyze(ctx context.Context, text string) (model.MoodAnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return model.MoodAnalysisResult{}, ErrEmptyText
	}

	res, err := a.provider.AnalyzeMood(ctx, text)
	if err == nil && res == nil {
		err = ErrEmptyResponse
	}
	if err == nil {
		err = a.validate.Struct(res)
	}
	if err != nil {
		a.logger.Warn().Err(err).Msg("mood analysis failed, using fallback")
		fallbacksTotal.WithLabelValues("analysis", a.name).Inc()
		return FallbackAnalysis(), nil
	}
	return *res, nil
}
