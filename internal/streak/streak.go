// Package streak derives the dashboard views (today's entry, the running
// streak and the charted history) from a snapshot of the mood log.
//
// Every function is pure: callers pass the collection they hold and the
// current time, already converted to the location the user lives in.
package streak

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aebalz/mindful-journey/internal/model"
)

// DisplayWindow is the number of distinct days kept for charting.
const DisplayWindow = 30

const dayLayout = "2006-01-02"

// ErrMalformedDate marks a log whose date cannot be parsed.
var ErrMalformedDate = errors.New("malformed date")

// timestampLayouts are tried in order. The second one covers entries written
// without an offset, which are read as plain wall-clock time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// IntegrityError reports a stored log that cannot take part in date arithmetic.
// Callers use it to tell corrupt data apart from an empty history.
type IntegrityError struct {
	LogID string
	Field string
	Value string
	Err   error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("log %q has invalid %s %q: %v", e.LogID, e.Field, e.Value, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// ParseDate parses a stored timestamp, keeping the wall clock it was written in.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrMalformedDate
}

// DayKey returns the YYYY-MM-DD calendar day a log was written on.
func DayKey(log model.MoodLog) (string, error) {
	t, err := ParseDate(log.Date)
	if err != nil {
		return "", &IntegrityError{LogID: log.ID, Field: "date", Value: log.Date, Err: err}
	}
	return t.Format(dayLayout), nil
}

// Today returns the day key for now. now must already be in the user's location.
func Today(now time.Time) string {
	return now.Format(dayLayout)
}

type datedLog struct {
	log model.MoodLog
	at  time.Time
	day string
}

func annotate(log model.MoodLog) (datedLog, error) {
	if !log.Mood.Valid() {
		return datedLog{}, &IntegrityError{LogID: log.ID, Field: "mood", Value: string(log.Mood), Err: model.ErrUnknownMood}
	}
	at, err := ParseDate(log.Date)
	if err != nil {
		return datedLog{}, &IntegrityError{LogID: log.ID, Field: "date", Value: log.Date, Err: err}
	}
	return datedLog{log: log, at: at, day: at.Format(dayLayout)}, nil
}

// dedup keeps the latest entry of every day. On equal timestamps the entry
// that comes later in the input wins.
func dedup(logs []model.MoodLog) (map[string]datedLog, error) {
	byDay := make(map[string]datedLog, len(logs))
	for _, log := range logs {
		d, err := annotate(log)
		if err != nil {
			return nil, err
		}
		if prev, ok := byDay[d.day]; ok && prev.at.After(d.at) {
			continue
		}
		byDay[d.day] = d
	}
	return byDay, nil
}

// DeduplicateByDay collapses the collection to one entry per calendar day,
// keeping the most recently written one.
func DeduplicateByDay(logs []model.MoodLog) (map[string]model.MoodLog, error) {
	byDay, err := dedup(logs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.MoodLog, len(byDay))
	for day, d := range byDay {
		out[day] = d.log
	}
	return out, nil
}

// FindTodayLog returns today's entry, or nil when nothing was logged today.
func FindTodayLog(logs []model.MoodLog, now time.Time) (*model.MoodLog, error) {
	byDay, err := dedup(logs)
	if err != nil {
		return nil, err
	}
	d, ok := byDay[Today(now)]
	if !ok {
		return nil, nil
	}
	log := d.log
	return &log, nil
}

// ComputeStreak counts consecutive logged days ending today or yesterday.
// A missing day beyond yesterday resets it to zero, and the walk stops at
// the first gap even when older days are consecutive among themselves.
func ComputeStreak(logs []model.MoodLog, now time.Time) (int, error) {
	byDay, err := dedup(logs)
	if err != nil {
		return 0, err
	}
	if len(byDay) == 0 {
		return 0, nil
	}
	days := sortedDays(byDay, true)

	if daysBetween(Today(now), days[0]) > 1 {
		return 0, nil
	}

	streak := 1
	cursor := days[0]
	for _, day := range days[1:] {
		if daysBetween(cursor, day) != 1 {
			break
		}
		streak++
		cursor = day
	}
	return streak, nil
}

// LongestStreak returns the longest run of consecutive logged days in the
// whole history, regardless of whether it is still active.
func LongestStreak(logs []model.MoodLog) (int, error) {
	byDay, err := dedup(logs)
	if err != nil {
		return 0, err
	}
	if len(byDay) == 0 {
		return 0, nil
	}
	days := sortedDays(byDay, false)

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest, nil
}

// SortAscendingForDisplay returns the newest DisplayWindow days, oldest first.
func SortAscendingForDisplay(logs []model.MoodLog) ([]model.MoodLog, error) {
	byDay, err := dedup(logs)
	if err != nil {
		return nil, err
	}
	dated := make([]datedLog, 0, len(byDay))
	for _, d := range byDay {
		dated = append(dated, d)
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].day != dated[j].day {
			return dated[i].day < dated[j].day
		}
		return dated[i].at.Before(dated[j].at)
	})
	if len(dated) > DisplayWindow {
		dated = dated[len(dated)-DisplayWindow:]
	}

	out := make([]model.MoodLog, len(dated))
	for i, d := range dated {
		out[i] = d.log
	}
	return out, nil
}

func sortedDays(byDay map[string]datedLog, descending bool) []string {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	if descending {
		sort.Sort(sort.Reverse(sort.StringSlice(days)))
	} else {
		sort.Strings(days)
	}
	return days
}

// daysBetween returns the number of calendar days from b to a. Both keys are
// well formed because they come out of annotate or Today.
func daysBetween(a, b string) int {
	ta, _ := time.Parse(dayLayout, a)
	tb, _ := time.Parse(dayLayout, b)
	return int(ta.Sub(tb).Hours() / 24)
}
