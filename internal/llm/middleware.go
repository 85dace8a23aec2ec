package llm

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/aebalz/mindful-journey/internal/model"
)

// Middleware decorates a Provider.
type Middleware func(next Provider) Provider

// Wrap applies middlewares so that the first one listed is the outermost.
func Wrap(p Provider, mws ...Middleware) Provider {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			p = mws[i](p)
		}
	}
	return p
}

// Retry retries failed calls up to maxAttempts times with exponential backoff
// starting at baseDelay. Permanent errors and cancelled contexts stop at once.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Provider) Provider {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next Provider
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error) {
	var out *model.MoodAnalysisResult
	err := r.do(ctx, func() error {
		var err error
		out, err = r.next.AnalyzeMood(ctx, text)
		return err
	})
	return out, err
}

func (r *retrying) GenerateAffirmation(ctx context.Context, mood string) (string, error) {
	var out string
	err := r.do(ctx, func() error {
		var err error
		out, err = r.next.GenerateAffirmation(ctx, mood)
		return err
	})
	return out, err
}

func (r *retrying) do(ctx context.Context, call func() error) error {
	var last error
	for i := 0; i < r.max; i++ {
		err := call()
		if err == nil {
			return nil
		}
		var pErr *PermanentError
		if errors.As(err, &pErr) {
			return err
		}
		last = err
		if i == r.max-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.base * time.Duration(1<<i)):
		}
	}
	return last
}

// RateLimit spaces calls with a token bucket of rps requests per second.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) Middleware {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return func(next Provider) Provider {
		return &limited{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
	}
}

type limited struct {
	next    Provider
	limiter *rate.Limiter
}

func (l *limited) Name() string { return l.next.Name() }

func (l *limited) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.next.AnalyzeMood(ctx, text)
}

func (l *limited) GenerateAffirmation(ctx context.Context, mood string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.next.GenerateAffirmation(ctx, mood)
}

// Logging records every call with its latency at debug level and failures at warn.
func Logging(logger zerolog.Logger) Middleware {
	return func(next Provider) Provider {
		return &logging{next: next, logger: logger.With().Str("provider", next.Name()).Logger()}
	}
}

type logging struct {
	next   Provider
	logger zerolog.Logger
}

func (l *logging) Name() string { return l.next.Name() }

func (l *logging) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error) {
	start := time.Now()
	res, err := l.next.AnalyzeMood(ctx, text)
	l.record("analyze_mood", start, err)
	return res, err
}

func (l *logging) GenerateAffirmation(ctx context.Context, mood string) (string, error) {
	start := time.Now()
	out, err := l.next.GenerateAffirmation(ctx, mood)
	l.record("generate_affirmation", start, err)
	return out, err
}

func (l *logging) record(op string, start time.Time, err error) {
	ev := l.logger.Debug()
	if err != nil {
		ev = l.logger.Warn().Err(err)
	}
	ev.Str("op", op).Dur("latency", time.Since(start)).Msg("llm call")
}

// CacheAffirmations remembers successful affirmations per mood phrase for ttl.
// Mood analysis is never cached.
func CacheAffirmations(size int, ttl time.Duration) Middleware {
	if size <= 0 || ttl <= 0 {
		return nil
	}
	return func(next Provider) Provider {
		return &caching{next: next, cache: expirable.NewLRU[string, string](size, nil, ttl)}
	}
}

type caching struct {
	next  Provider
	cache *expirable.LRU[string, string]
}

func (c *caching) Name() string { return c.next.Name() }

func (c *caching) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error) {
	return c.next.AnalyzeMood(ctx, text)
}

func (c *caching) GenerateAffirmation(ctx context.Context, mood string) (string, error) {
	if out, ok := c.cache.Get(mood); ok {
		return out, nil
	}
	out, err := c.next.GenerateAffirmation(ctx, mood)
	if err != nil {
		return "", err
	}
	c.cache.Add(mood, out)
	return out, nil
}
