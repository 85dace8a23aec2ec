package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journey/internal/llm"
	"github.com/aebalz/mindful-journey/internal/model"
	"github.com/aebalz/mindful-journey/internal/streak"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Analyst infers mood from text and never fails on provider errors.
type Analyst interface {
	Analyze(ctx context.Context, text string) (model.MoodAnalysisResult, error)
}

// AffirmationSource returns an affirmation for a mood and never fails.
type AffirmationSource interface {
	Affirm(ctx context.Context, mood model.Mood) string
}

// ChatServiceInterface is what the handlers need from the assistant.
type ChatServiceInterface interface {
	Chat(ctx context.Context, text string) (ChatReply, error)
	Analyze(ctx context.Context, text string) (model.MoodAnalysisResult, error)
	CheckIn(ctx context.Context, mood model.Mood, journal string) (CheckInResult, error)
	Affirm(ctx context.Context, mood model.Mood) (AffirmationResult, error)
}

// ChatReply is one assistant turn.
type ChatReply struct {
	Reply          string             `json:"reply"`
	SuggestedQuote string             `json:"suggested_quote"`
	DetectedMood   model.ProviderMood `json:"detected_mood"`
	Confidence     float64            `json:"confidence"`
	Logged         *model.MoodLog     `json:"logged,omitempty"`
}

// AffirmationResult carries either an affirmation or crisis resources.
type AffirmationResult struct {
	Affirmation string               `json:"affirmation,omitempty"`
	Crisis      []llm.CrisisResource `json:"crisis_resources,omitempty"`
}

// CheckInResult is the outcome of logging today's mood.
type CheckInResult struct {
	Log model.MoodLog `json:"log"`
	AffirmationResult
}

// ChatService ties the assistant to the mood log.
type ChatService struct {
	moods    *MoodService
	analyst  Analyst
	affirmer AffirmationSource
	logger   zerolog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(moods *MoodService, analyst Analyst, affirmer AffirmationSource, logger zerolog.Logger) *ChatService {
	return &ChatService{
		moods:    moods,
		analyst:  analyst,
		affirmer: affirmer,
		logger:   logger.With().Str("component", "chat_service").Logger(),
	}
}

// Chat answers text and, when the detected mood is known and nothing was
// logged today yet, records it with text as the journal entry. An answer
// arriving after the caller went away is not logged.
func (s *ChatService) Chat(ctx context.Context, text string) (ChatReply, error) {
	res, err := s.analyst.Analyze(ctx, text)
	if err != nil {
		return ChatReply{}, err
	}
	reply := ChatReply{
		Reply:          res.Reply,
		SuggestedQuote: res.SuggestedQuote,
		DetectedMood:   res.Mood,
		Confidence:     res.Confidence,
	}

	if ctx.Err() != nil {
		s.logger.Debug().Msg("chat caller gone, skipping mood log")
		return reply, nil
	}
	mood, ok := model.ToMood(res.Mood)
	if !ok {
		return reply, nil
	}
	log, added, err := s.moods.AddIfNoneToday(ctx, mood, text)
	if err != nil {
		var integrity *streak.IntegrityError
		if errors.As(err, &integrity) {
			s.logger.Warn().Err(err).Msg("cannot tell whether today is logged, skipping mood log")
			return reply, nil
		}
		return reply, err
	}
	if added {
		reply.Logged = &log
	}
	return reply, nil
}

// Analyze returns the assistant's reading of text without logging anything.
func (s *ChatService) Analyze(ctx context.Context, text string) (model.MoodAnalysisResult, error) {
	return s.analyst.Analyze(ctx, text)
}

// CheckIn logs mood for today and answers with an affirmation, or with
// crisis resources when the user feels extremely low.
func (s *ChatService) CheckIn(ctx context.Context, mood model.Mood, journal string) (CheckInResult, error) {
	log, err := s.moods.AddOrReplaceToday(ctx, mood, journal)
	if err != nil {
		return CheckInResult{}, err
	}
	aff, err := s.Affirm(ctx, mood)
	if err != nil {
		return CheckInResult{}, err
	}
	return CheckInResult{Log: log, AffirmationResult: aff}, nil
}

// Affirm returns an affirmation for mood. extremely-low is never sent to
// the model; crisis resources are returned instead.
func (s *ChatService) Affirm(ctx context.Context, mood model.Mood) (AffirmationResult, error) {
	if _, err := model.ParseMood(string(mood)); err != nil {
		return AffirmationResult{}, err
	}
	if mood == model.MoodExtremelyLow {
		return AffirmationResult{Crisis: llm.CrisisResources}, nil
	}
	return AffirmationResult{Affirmation: s.affirmer.Affirm(ctx, mood)}, nil
}
