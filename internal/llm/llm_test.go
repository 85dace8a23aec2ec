package llm

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journey/internal/model"
)

// scriptedProvider answers from fixed values and counts calls.
type scriptedProvider struct {
	result      *model.MoodAnalysisResult
	affirmation string
	err         error
	failFirst   int32
	calls       atomic.Int32
	lastMood    string
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error) {
	n := p.calls.Add(1)
	if n <= p.failFirst {
		return nil, errors.New("transient")
	}
	return p.result, p.err
}

func (p *scriptedProvider) GenerateAffirmation(ctx context.Context, mood string) (string, error) {
	n := p.calls.Add(1)
	p.lastMood = mood
	if n <= p.failFirst {
		return "", errors.New("transient")
	}
	return p.affirmation, p.err
}

func validResult() *model.MoodAnalysisResult {
	return &model.MoodAnalysisResult{
		Reply:          "That sounds like a lovely day.",
		Mood:           model.ProviderMoodHappy,
		Confidence:     0.92,
		SuggestedQuote: "Joy is contagious.",
	}
}

func TestMoodAnalyst_PassesThroughValidResult(t *testing.T) {
	a := NewMoodAnalyst(&scriptedProvider{result: validResult()}, "test", zerolog.Nop())
	got, err := a.Analyze(context.Background(), "I had a great day")
	require.NoError(t, err)
	assert.Equal(t, *validResult(), got)
}

func TestMoodAnalyst_FallbackOnFailure(t *testing.T) {
	want := model.MoodAnalysisResult{
		Reply:          FallbackReply,
		Mood:           "Neutral",
		Confidence:     0.1,
		SuggestedQuote: FallbackQuote,
	}
	cases := map[string]*scriptedProvider{
		"provider error":  {err: errors.New("network down")},
		"nil result":      {},
		"missing reply":   {result: &model.MoodAnalysisResult{Mood: "Happy", Confidence: 0.5}},
		"unknown mood":    {result: &model.MoodAnalysisResult{Reply: "hi", Mood: "Ecstatic", Confidence: 0.5}},
		"confidence > 1":  {result: &model.MoodAnalysisResult{Reply: "hi", Mood: "Calm", Confidence: 1.5}},
		"negative confid": {result: &model.MoodAnalysisResult{Reply: "hi", Mood: "Calm", Confidence: -0.2}},
		"missing quote":   {result: &model.MoodAnalysisResult{Reply: "hi", Mood: "Calm", Confidence: 0.5}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := NewMoodAnalyst(p, "test", zerolog.Nop()).Analyze(context.Background(), "hello")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestMoodAnalyst_RejectsBlankText(t *testing.T) {
	p := &scriptedProvider{result: validResult()}
	_, err := NewMoodAnalyst(p, "test", zerolog.Nop()).Analyze(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Zero(t, p.calls.Load())
}

func TestAffirmer_SendsMoodPhrase(t *testing.T) {
	p := &scriptedProvider{affirmation: "  You are doing great.  "}
	got := NewAffirmer(p, "test", zerolog.Nop()).Affirm(context.Background(), model.MoodHappy)
	assert.Equal(t, "You are doing great.", got)
	assert.Equal(t, "feeling happy and joyful", p.lastMood)
}

func TestAffirmer_PassesUnmappedMoodThrough(t *testing.T) {
	p := &scriptedProvider{affirmation: "Breathe."}
	NewAffirmer(p, "test", zerolog.Nop()).Affirm(context.Background(), model.MoodStressed)
	assert.Equal(t, "stressed", p.lastMood)
}

func TestAffirmer_Fallback(t *testing.T) {
	for name, p := range map[string]*scriptedProvider{
		"error": {err: errors.New("boom")},
		"blank": {affirmation: " "},
	} {
		t.Run(name, func(t *testing.T) {
			got := NewAffirmer(p, "test", zerolog.Nop()).Affirm(context.Background(), model.MoodSad)
			assert.Equal(t, FallbackAffirmation, got)
		})
	}
}

func TestRetry_RecoversFromTransientErrors(t *testing.T) {
	p := &scriptedProvider{result: validResult(), failFirst: 2}
	wrapped := Wrap(p, Retry(3, time.Millisecond))
	got, err := wrapped.AnalyzeMood(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, validResult(), got)
	assert.EqualValues(t, 3, p.calls.Load())
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	p := &scriptedProvider{err: NewPermanentError(errors.New("bad key"))}
	_, err := Wrap(p, Retry(5, time.Millisecond)).AnalyzeMood(context.Background(), "hi")
	var pErr *PermanentError
	assert.True(t, errors.As(err, &pErr))
	assert.EqualValues(t, 1, p.calls.Load())
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	p := &scriptedProvider{err: errors.New("still down")}
	_, err := Wrap(p, Retry(2, time.Millisecond)).GenerateAffirmation(context.Background(), "calm")
	assert.EqualError(t, err, "still down")
	assert.EqualValues(t, 2, p.calls.Load())
}

func TestCacheAffirmations(t *testing.T) {
	p := &scriptedProvider{affirmation: "Stay kind to yourself."}
	wrapped := Wrap(p, CacheAffirmations(8, time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := wrapped.GenerateAffirmation(ctx, "feeling calm and peaceful")
		require.NoError(t, err)
		assert.Equal(t, "Stay kind to yourself.", got)
	}
	assert.EqualValues(t, 1, p.calls.Load())

	_, err := wrapped.GenerateAffirmation(ctx, "feeling sad and a bit down")
	require.NoError(t, err)
	assert.EqualValues(t, 2, p.calls.Load())
}

func TestRateLimit_CancelledContext(t *testing.T) {
	p := &scriptedProvider{result: validResult()}
	wrapped := Wrap(p, RateLimit(0.001, 1))
	ctx := context.Background()
	_, err := wrapped.AnalyzeMood(ctx, "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = wrapped.AnalyzeMood(ctx, "second")
	assert.Error(t, err)
	assert.EqualValues(t, 1, p.calls.Load())
}

func TestWrap_SkipsDisabledMiddleware(t *testing.T) {
	p := &scriptedProvider{}
	assert.Same(t, Provider(p), Wrap(p, RateLimit(0, 0), CacheAffirmations(0, 0)))
}

func TestDecodeAnalysis(t *testing.T) {
	got, err := DecodeAnalysis("```json\n{\"reply\":\"hey\",\"mood\":\"Calm\",\"confidence\":0.7,\"suggested_quote\":\"q\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, model.ProviderMoodCalm, got.Mood)
	assert.Equal(t, 0.7, got.Confidence)

	_, err = DecodeAnalysis("")
	assert.ErrorIs(t, err, ErrEmptyResponse)
	_, err = DecodeAnalysis("not json")
	assert.Error(t, err)
}

func TestDecodeAnalysis_ConfidenceMustBePresent(t *testing.T) {
	_, err := DecodeAnalysis(`{"reply":"hey","mood":"Calm","suggested_quote":"q"}`)
	assert.ErrorIs(t, err, ErrMissingConfidence)

	_, err = DecodeAnalysis(`{"reply":"hey","mood":"Calm","confidence":null,"suggested_quote":"q"}`)
	assert.ErrorIs(t, err, ErrMissingConfidence)

	got, err := DecodeAnalysis(`{"reply":"hey","mood":"Calm","confidence":0,"suggested_quote":"q"}`)
	require.NoError(t, err)
	assert.Zero(t, got.Confidence)
}

func TestDecodeAffirmation(t *testing.T) {
	got, err := DecodeAffirmation(`{"affirmation":"You matter."}`)
	require.NoError(t, err)
	assert.Equal(t, "You matter.", got)

	_, err = DecodeAffirmation(`{"affirmation":""}`)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestRenderPrompts(t *testing.T) {
	p, err := RenderAnalysisPrompt("I feel <lost>")
	require.NoError(t, err)
	assert.Contains(t, p, `"I feel <lost>"`)
	assert.Contains(t, p, "741741")
	assert.Contains(t, p, "988")

	p, err = RenderAffirmationPrompt("feeling calm and peaceful")
	require.NoError(t, err)
	assert.True(t, strings.Contains(p, "Mood: feeling calm and peaceful"))
}

func TestUnavailable_FallsBackEverywhere(t *testing.T) {
	p := Unavailable("gemini:none", errors.New("no api key"))
	assert.Equal(t, "gemini:none", p.Name())

	_, err := p.AnalyzeMood(context.Background(), "hi")
	var pErr *PermanentError
	require.True(t, errors.As(err, &pErr))

	got, err := NewMoodAnalyst(p, p.Name(), zerolog.Nop()).Analyze(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, FallbackAnalysis(), got)
	assert.Equal(t, FallbackAffirmation, NewAffirmer(p, p.Name(), zerolog.Nop()).Affirm(context.Background(), model.MoodSad))
}
