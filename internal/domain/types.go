package domain

import (
	"fmt"
	"strings"
	"time"
)

type RecordID string

type Timestamp = time.Time

// Slot is the part of the day a mood check-in belongs to.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "am":
		return SlotMorning, nil
	case "evening", "pm":
		return SlotEvening, nil
	default:
		return "", fmt.Errorf("unknown slot %q (want morning or evening)", s)
	}
}

// DateLayout is the ISO calendar date format used for every record key.
const DateLayout = "2006-01-02"

// Date is a calendar date in ISO form (YYYY-MM-DD).
// ISO dates order lexically, so plain string comparison is chronological.
type Date string

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date. Invalid dates yield the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) After(o Date) bool  { return d > o }
func (d Date) Before(o Date) bool { return d < o }
func (d Date) String() string     { return string(d) }

// Level is a small subjective scale value, 1..5.
type Level int

const (
	MinLevel Level = 1
	MaxLevel Level = 5
)

func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// LevelPtr is a helper for optional scale fields.
func LevelPtr(v int) *Level {
	l := Level(v)
	return &l
}

var energyLabels = map[Level]string{
	1: "no strength",
	2: "low",
	3: "normal",
	4: "good",
	5: "plenty",
}

// EnergyLabel returns the human label of an energy level.
func EnergyLabel(l Level) string {
	return energyLabels[l]
}

// Mood is the symbolic mood label stored with a check-in.
type Mood string

const (
	MoodCalm    Mood = "calm"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
)

// Moods lists the vocabulary in display order.
var Moods = []Mood{MoodCalm, MoodGood, MoodNeutral, MoodSad, MoodAnxious}

var moodEmoji = map[Mood]string{
	MoodCalm:    "😌",
	MoodGood:    "🙂",
	MoodNeutral: "😐",
	MoodSad:     "😔",
	MoodAnxious: "😰",
}

func (m Mood) Emoji() string {
	return moodEmoji[m]
}

func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Moods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q", s)
}
