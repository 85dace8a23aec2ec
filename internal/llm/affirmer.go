package llm

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journey/internal/model"
)

// FallbackAffirmation is returned when no affirmation could be generated.
const FallbackAffirmation = "You possess a strength that you may not even be aware of. Be gentle with yourself."

// moodPhrases give the model a fuller description than the bare label.
var moodPhrases = map[model.Mood]string{
	model.MoodHappy:        "feeling happy and joyful",
	model.MoodSad:          "feeling sad and a bit down",
	model.MoodAnxious:      "feeling anxious and worried",
	model.MoodCalm:         "feeling calm and peaceful",
	model.MoodAngry:        "feeling angry and frustrated",
	model.MoodExtremelyLow: "feeling extremely low and overwhelmed",
}

// MoodPhrase returns the description sent for mood, or the mood itself.
func MoodPhrase(mood model.Mood) string {
	if phrase, ok := moodPhrases[mood]; ok {
		return phrase
	}
	return string(mood)
}

// Affirmer wraps an AffirmationProvider with the phrase table and fallback.
type Affirmer struct {
	provider AffirmationProvider
	name     string
	logger   zerolog.Logger
}

// NewAffirmer creates an Affirmer. name labels logs and metrics.
func NewAffirmer(provider AffirmationProvider, name string, logger zerolog.Logger) *Affirmer {
	return &Affirmer{
		provider: provider,
		name:     name,
		logger:   logger.With().Str("component", "affirmer").Str("provider", name).Logger(),
	}
}

// Affirm returns an affirmation for mood; it never fails.
func (a *Affirmer) Affirm(ctx context.Context, mood model.Mood) string {
	text, err := a.provider.GenerateAffirmation(ctx, MoodPhrase(mood))
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		a.logger.Warn().Err(err).Str("mood", string(mood)).Msg("affirmation failed, using fallback")
		fallbacksTotal.WithLabelValues("affirmation", a.name).Inc()
		return FallbackAffirmation
	}
	return strings.TrimSpace(text)
}

// CrisisResource is a hotline shown instead of an affirmation.
type CrisisResource struct {
	Label   string `json:"label"`
	Contact string `json:"contact"`
	Region  string `json:"region"`
}

// CrisisResources are offered whenever the user reports feeling extremely low.
var CrisisResources = []CrisisResource{
	{Label: "Suicide & Crisis Lifeline", Contact: "Call or text 988", Region: "US"},
	{Label: "Crisis Text Line", Contact: "Text HOME to 741741", Region: "US"},
	{Label: "Mental health helpline", Contact: "Call 9152987821", Region: "India"},
}
