package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journey/internal/model"
	"github.com/aebalz/mindful-journey/internal/repository"
	"github.com/aebalz/mindful-journey/internal/streak"
)

// MoodServiceInterface is what the handlers need from the mood log.
type MoodServiceInterface interface {
	All() []model.MoodLog
	AddOrReplaceToday(ctx context.Context, mood model.Mood, journal string) (model.MoodLog, error)
	TodayLog() (*model.MoodLog, error)
	Streak() (int, error)
	History() ([]model.MoodLog, error)
	Chart() ([]streak.ChartPoint, error)
	Summary() (streak.Summary, error)
	Export(format string) ([]byte, string, error)
}

// MoodService owns the in-memory mood log and keeps the store in sync with it.
// Mutations are serialised in-process; the store itself is last-writer-wins.
type MoodService struct {
	store  repository.LogStore
	logger zerolog.Logger
	clock  func() time.Time
	loc    *time.Location
	newID  func() string

	mu   sync.Mutex
	logs []model.MoodLog
}

// Option customises a MoodService.
type Option func(*MoodService)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *MoodService) { s.clock = clock }
}

// WithLocation sets the location calendar days are counted in.
func WithLocation(loc *time.Location) Option {
	return func(s *MoodService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *MoodService) { s.newID = newID }
}

// NewMoodService creates a MoodService. Call Load before serving.
func NewMoodService(store repository.LogStore, logger zerolog.Logger, opts ...Option) *MoodService {
	s := &MoodService{
		store:  store,
		logger: logger.With().Str("component", "mood_service").Logger(),
		clock:  time.Now,
		loc:    time.Local,
		newID:  func() string { return uuid.NewString() },
		logs:   []model.MoodLog{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MoodService) now() time.Time {
	return s.clock().In(s.loc)
}

// Load replaces the in-memory collection with the stored one. A store that
// cannot be read leaves the service with an empty collection.
func (s *MoodService) Load(ctx context.Context) {
	logs, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not load mood logs, starting empty")
		logs = []model.MoodLog{}
	}
	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()
	s.logger.Info().Int("count", len(logs)).Msg("mood logs loaded")
}

// AddOrReplaceToday records mood for today, replacing whatever today already
// held. The entry is kept in memory even when the store rejects the write.
func (s *MoodService) AddOrReplaceToday(ctx context.Context, mood model.Mood, journal string) (model.MoodLog, error) {
	if _, err := model.ParseMood(string(mood)); err != nil {
		return model.MoodLog{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	today := streak.Today(now)

	kept := make([]model.MoodLog, 0, len(s.logs)+1)
	for _, log := range s.logs {
		day, err := streak.DayKey(log)
		if err == nil && day == today {
			continue
		}
		kept = append(kept, log)
	}
	return s.prependLocked(ctx, now, kept, mood, journal), nil
}

// AddIfNoneToday records mood only when today has no entry yet. The check
// and the insert happen under one lock. It reports whether an entry was added.
func (s *MoodService) AddIfNoneToday(ctx context.Context, mood model.Mood, journal string) (model.MoodLog, bool, error) {
	if _, err := model.ParseMood(string(mood)); err != nil {
		return model.MoodLog{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, err := streak.FindTodayLog(s.logs, now)
	if err != nil {
		return model.MoodLog{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}
	return s.prependLocked(ctx, now, s.logs, mood, journal), true, nil
}

// prependLocked puts a new entry in front of rest and persists the result.
// s.mu must be held.
func (s *MoodService) prependLocked(ctx context.Context, now time.Time, rest []model.MoodLog, mood model.Mood, journal string) model.MoodLog {
	entry := model.MoodLog{
		ID:      s.newID(),
		Date:    now.Format(time.RFC3339Nano),
		Mood:    mood,
		Journal: journal,
	}
	updated := make([]model.MoodLog, 0, len(rest)+1)
	updated = append(updated, entry)
	updated = append(updated, rest...)
	s.logs = updated

	if err := s.store.Save(context.WithoutCancel(ctx), updated); err != nil {
		s.logger.Warn().Err(err).Str("id", entry.ID).Msg("could not persist mood logs")
	}
	return entry
}

func (s *MoodService) snapshot() []model.MoodLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MoodLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// All returns a copy of the collection, newest first.
func (s *MoodService) All() []model.MoodLog {
	logs := s.snapshot()
	sortByDate(logs, true)
	return logs
}

// TodayLog returns today's entry or nil.
func (s *MoodService) TodayLog() (*model.MoodLog, error) {
	return streak.FindTodayLog(s.snapshot(), s.now())
}

// Streak returns the current streak.
func (s *MoodService) Streak() (int, error) {
	return streak.ComputeStreak(s.snapshot(), s.now())
}

// History returns the charted window, oldest first.
func (s *MoodService) History() ([]model.MoodLog, error) {
	return streak.SortAscendingForDisplay(s.snapshot())
}

// Chart returns the charted window on the mood scale.
func (s *MoodService) Chart() ([]streak.ChartPoint, error) {
	return streak.ChartPoints(s.snapshot())
}

// Summary returns the dashboard summary.
func (s *MoodService) Summary() (streak.Summary, error) {
	return streak.Summarize(s.snapshot(), s.now())
}

// sortByDate orders logs by timestamp. Unparseable dates sort after every
// valid one and keep their relative order.
func sortByDate(logs []model.MoodLog, descending bool) {
	type keyed struct {
		log model.MoodLog
		at  time.Time
		ok  bool
	}
	items := make([]keyed, len(logs))
	for i, log := range logs {
		t, err := streak.ParseDate(log.Date)
		items[i] = keyed{log: log, at: t, ok: err == nil}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.ok || !b.ok {
			return a.ok && !b.ok
		}
		if descending {
			return a.at.After(b.at)
		}
		return a.at.Before(b.at)
	})
	for i, it := range items {
		logs[i] = it.log
	}
}
