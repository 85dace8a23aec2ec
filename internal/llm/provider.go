// Package llm holds the assistant capability: mood inference from free text
// and short affirmations for a mood. The concrete model backends live in the
// gemini and openai subpackages; the fallback contract lives here so both
// backends answer callers the same way when the model is unavailable.
package llm

import (
	"context"
	"errors"

	"github.com/aebalz/mindful-journey/internal/model"
)

// ErrEmptyResponse is returned by backends when the model answered with nothing usable.
var ErrEmptyResponse = errors.New("llm: empty response")

// MoodInferenceProvider infers the user's mood from free text.
type MoodInferenceProvider interface {
	AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error)
}

// AffirmationProvider writes an uplifting sentence for a mood description.
type AffirmationProvider interface {
	GenerateAffirmation(ctx context.Context, mood string) (string, error)
}

// Provider is one model backend offering both capabilities.
type Provider interface {
	MoodInferenceProvider
	AffirmationProvider
	Name() string
}

// PermanentError marks a failure that retrying cannot fix, such as a rejected
// API key or a prompt the provider refuses.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// NewPermanentError wraps err so Retry gives up immediately.
func NewPermanentError(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Unavailable returns a Provider that fails every call with reason. It stands
// in for a backend that could not be configured so callers get the fallbacks.
func Unavailable(name string, reason error) Provider {
	return &unavailable{name: name, err: NewPermanentError(reason)}
}

type unavailable struct {
	name string
	err  error
}

func (u *unavailable) Name() string { return u.name }

func (u *unavailable) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error) {
	return nil, u.err
}

func (u *unavailable) GenerateAffirmation(ctx context.Context, mood string) (string, error) {
	return "", u.err
}
