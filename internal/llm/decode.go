package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/aebalz/mindful-journey/internal/model"
)

// ErrMissingConfidence is returned for an analysis answer without a numeric
// confidence. A zero value cannot stand in for it.
var ErrMissingConfidence = errors.New("mood analysis has no confidence")

// analysisAnswer is the wire form of a mood analysis.
type analysisAnswer struct {
	Reply          string             `json:"reply"`
	Mood           model.ProviderMood `json:"mood"`
	Confidence     *float64           `json:"confidence"`
	SuggestedQuote string             `json:"suggested_quote"`
}

// DecodeAnalysis parses a model's JSON answer into a MoodAnalysisResult.
// Code fences around the JSON are tolerated; the remaining shape is checked
// by the MoodAnalyst.
func DecodeAnalysis(raw string) (*model.MoodAnalysisResult, error) {
	body := stripFences(raw)
	if body == "" {
		return nil, ErrEmptyResponse
	}
	var answer analysisAnswer
	if err := json.Unmarshal([]byte(body), &answer); err != nil {
		return nil, fmt.Errorf("decode mood analysis: %w", err)
	}
	if answer.Confidence == nil {
		return nil, fmt.Errorf("decode mood analysis: %w", ErrMissingConfidence)
	}
	return &model.MoodAnalysisResult{
		Reply:          answer.Reply,
		Mood:           answer.Mood,
		Confidence:     *answer.Confidence,
		SuggestedQuote: answer.SuggestedQuote,
	}, nil
}

// DecodeAffirmation parses {"affirmation": "..."}.
func DecodeAffirmation(raw string) (string, error) {
	body := stripFences(raw)
	if body == "" {
		return "", ErrEmptyResponse
	}
	var out struct {
		Affirmation string `json:"affirmation"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return "", fmt.Errorf("decode affirmation: %w", err)
	}
	if strings.TrimSpace(out.Affirmation) == "" {
		return "", ErrEmptyResponse
	}
	return out.Affirmation, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
