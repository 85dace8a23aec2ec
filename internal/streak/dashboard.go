package streak

import (
	"time"

	"github.com/aebalz/mindful-journey/internal/model"
)

// Achievement is a streak milestone shown on the dashboard.
type Achievement struct {
	Name     string `json:"name"`
	Goal     int    `json:"goal"`
	Unlocked bool   `json:"unlocked"`
}

var milestones = []Achievement{
	{Name: "First Step", Goal: 1},
	{Name: "7-Day Mindfulness", Goal: 7},
	{Name: "30-Day Consistency", Goal: 30},
}

// Achievements marks each milestone reached by the given streak.
func Achievements(streak int) []Achievement {
	out := make([]Achievement, len(milestones))
	for i, m := range milestones {
		m.Unlocked = streak >= m.Goal
		out[i] = m
	}
	return out
}

// moodScale places each mood on the 0 (lowest) to 5 (happiest) chart axis.
var moodScale = map[model.Mood]float64{
	model.MoodExtremelyLow: 0,
	model.MoodSad:          1,
	model.MoodAngry:        2,
	model.MoodAnxious:      3,
	model.MoodStressed:     3.5,
	model.MoodNeutral:      3,
	model.MoodCalm:         4,
	model.MoodHappy:        5,
}

// ChartPoint is one day on the mood trend chart.
type ChartPoint struct {
	Date  string     `json:"date"`
	Day   string     `json:"day"`
	Mood  model.Mood `json:"mood"`
	Value float64    `json:"value"`
}

// ChartPoints returns the display window as points on the mood scale.
func ChartPoints(logs []model.MoodLog) ([]ChartPoint, error) {
	window, err := SortAscendingForDisplay(logs)
	if err != nil {
		return nil, err
	}
	points := make([]ChartPoint, 0, len(window))
	for _, log := range window {
		day, err := DayKey(log)
		if err != nil {
			return nil, err
		}
		points = append(points, ChartPoint{
			Date:  log.Date,
			Day:   day,
			Mood:  log.Mood,
			Value: moodScale[log.Mood],
		})
	}
	return points, nil
}

// Summary bundles everything the dashboard renders.
type Summary struct {
	Today         *model.MoodLog     `json:"today"`
	CurrentStreak int                `json:"current_streak"`
	LongestStreak int                `json:"longest_streak"`
	LoggedDays    int                `json:"logged_days"`
	Achievements  []Achievement      `json:"achievements"`
	Distribution  map[model.Mood]int `json:"distribution"`
}

// Summarize computes the dashboard summary for the collection at now.
func Summarize(logs []model.MoodLog, now time.Time) (Summary, error) {
	byDay, err := DeduplicateByDay(logs)
	if err != nil {
		return Summary{}, err
	}
	today, err := FindTodayLog(logs, now)
	if err != nil {
		return Summary{}, err
	}
	current, err := ComputeStreak(logs, now)
	if err != nil {
		return Summary{}, err
	}
	longest, err := LongestStreak(logs)
	if err != nil {
		return Summary{}, err
	}

	dist := make(map[model.Mood]int)
	for _, log := range byDay {
		dist[log.Mood]++
	}

	return Summary{
		Today:         today,
		CurrentStreak: current,
		LongestStreak: longest,
		LoggedDays:    len(byDay),
		Achievements:  Achievements(current),
		Distribution:  dist,
	}, nil
}
