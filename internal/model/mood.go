package model

import (
	"errors"
	"fmt"
)

// ErrUnknownMood is returned when a mood value is outside the persisted enumeration.
var ErrUnknownMood = errors.New("unknown mood")

// Mood is the lowercase label persisted with every log entry.
type Mood string

const (
	MoodHappy        Mood = "happy"
	MoodSad          Mood = "sad"
	MoodAnxious      Mood = "anxious"
	MoodCalm         Mood = "calm"
	MoodAngry        Mood = "angry"
	MoodExtremelyLow Mood = "extremely-low"
	MoodStressed     Mood = "stressed"
	MoodNeutral      Mood = "neutral"
)

// AllMoods lists the persisted enumeration in selector order.
var AllMoods = []Mood{
	MoodHappy,
	MoodCalm,
	MoodAnxious,
	MoodSad,
	MoodAngry,
	MoodExtremelyLow,
	MoodStressed,
	MoodNeutral,
}

// Valid reports whether m belongs to the persisted enumeration.
func (m Mood) Valid() bool {
	for _, known := range AllMoods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMood validates a raw string against the persisted enumeration.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMood, s)
	}
	return m, nil
}

// ProviderMood is the capitalized label returned by the inference providers.
type ProviderMood string

const (
	ProviderMoodHappy    ProviderMood = "Happy"
	ProviderMoodSad      ProviderMood = "Sad"
	ProviderMoodAngry    ProviderMood = "Angry"
	ProviderMoodAnxious  ProviderMood = "Anxious"
	ProviderMoodStressed ProviderMood = "Stressed"
	ProviderMoodCalm     ProviderMood = "Calm"
	ProviderMoodNeutral  ProviderMood = "Neutral"
)

// ProviderMoods is the enumeration the providers are asked to answer with.
var ProviderMoods = []ProviderMood{
	ProviderMoodHappy,
	ProviderMoodSad,
	ProviderMoodAngry,
	ProviderMoodAnxious,
	ProviderMoodStressed,
	ProviderMoodCalm,
	ProviderMoodNeutral,
}

var providerToMood = map[ProviderMood]Mood{
	ProviderMoodHappy:    MoodHappy,
	ProviderMoodSad:      MoodSad,
	ProviderMoodAngry:    MoodAngry,
	ProviderMoodAnxious:  MoodAnxious,
	ProviderMoodStressed: MoodStressed,
	ProviderMoodCalm:     MoodCalm,
	ProviderMoodNeutral:  MoodNeutral,
}

// ToMood maps a provider label onto the persisted enumeration.
// The second result is false for labels that must never be logged.
func ToMood(p ProviderMood) (Mood, bool) {
	m, ok := providerToMood[p]
	return m, ok
}

// MoodLog is one journal entry. Date is an RFC 3339 timestamp in the
// wall-clock time of the device that wrote it.
type MoodLog struct {
	ID      string `json:"id" gorm:"primaryKey;size:36"`
	Date    string `json:"date" gorm:"not null;index"`
	Mood    Mood   `json:"mood" gorm:"not null;size:32"`
	Journal string `json:"journal"`
}

// TableName pins the table used by the gorm-backed log store.
func (MoodLog) TableName() string {
	return "mood_logs"
}

// MoodAnalysisResult is what the assistant returns for a piece of free text.
// Every field is required; a model answer without confidence is rejected
// when it is decoded. It is never persisted.
type MoodAnalysisResult struct {
	Reply          string       `json:"reply" validate:"required"`
	Mood           ProviderMood `json:"mood" validate:"required,oneof=Happy Sad Angry Anxious Stressed Calm Neutral"`
	Confidence     float64      `json:"confidence" validate:"gte=0,lte=1"`
	SuggestedQuote string       `json:"suggested_quote" validate:"required"`
}
