package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MoodKey addresses a single mood check-in.
type MoodKey struct {
	Date Date
	Slot Slot
}

func (k MoodKey) String() string {
	return string(k.Date) + "/" + string(k.Slot)
}

// SortMoodEntries orders entries by date, morning before evening.
func SortMoodEntries(entries []*MoodEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Slot() == SlotMorning && entries[j].Slot() != SlotMorning
	})
}

// SlotDetails holds the fields that only exist for one slot. Exactly one of
// MorningDetails or EveningDetails is used, so the other slot's field is
// absent by construction.
type SlotDetails interface {
	Slot() Slot
}

type MorningDetails struct {
	SleepQuality *Level
}

func (MorningDetails) Slot() Slot { return SlotMorning }

type EveningDetails struct {
	Anxiety *Level
}

func (EveningDetails) Slot() Slot { return SlotEvening }

// DetailsFor returns empty details of the given slot.
func DetailsFor(s Slot) SlotDetails {
	if s == SlotEvening {
		return EveningDetails{}
	}
	return MorningDetails{}
}

// MoodEntry is a morning or evening check-in. ID and CreatedAt are assigned
// by the backend.
type MoodEntry struct {
	ID        RecordID
	CreatedAt Timestamp

	Date    Date
	Mood    Mood
	Energy  *Level
	Details SlotDetails
	Note    *string
}

func (e *MoodEntry) Slot() Slot {
	if e.Details == nil {
		return ""
	}
	return e.Details.Slot()
}

func (e *MoodEntry) Key() MoodKey {
	return MoodKey{Date: e.Date, Slot: e.Slot()}
}

// SleepQuality is set only on morning entries.
func (e *MoodEntry) SleepQuality() *Level {
	if d, ok := e.Details.(MorningDetails); ok {
		return d.SleepQuality
	}
	return nil
}

// Anxiety is set only on evening entries.
func (e *MoodEntry) Anxiety() *Level {
	if d, ok := e.Details.(EveningDetails); ok {
		return d.Anxiety
	}
	return nil
}

// Validate checks the entry before it is written. Failures wrap
// ErrInvalidRecord.
func (e *MoodEntry) Validate() error {
	if err := e.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}

func (e *MoodEntry) validate() error {
	if _, err := ParseDate(string(e.Date)); err != nil {
		return err
	}
	if e.Details == nil {
		return fmt.Errorf("mood entry %s: missing slot", e.Date)
	}
	if _, err := ParseMood(string(e.Mood)); err != nil {
		return err
	}
	for name, l := range map[string]*Level{
		"energy":  e.Energy,
		"anxiety": e.Anxiety(),
		"sleep":   e.SleepQuality(),
	} {
		if l != nil && !l.Valid() {
			return fmt.Errorf("%s must be between %d and %d, got %d", name, MinLevel, MaxLevel, *l)
		}
	}
	return nil
}

// JournalQuestions is the number of evening journal answers.
const JournalQuestions = 4

type JournalAnswers [JournalQuestions]string

// JournalEntry is the evening reflection for one date.
type JournalEntry struct {
	ID        RecordID
	CreatedAt Timestamp

	Date    Date
	Answers JournalAnswers
}

// Complete reports whether every answer is non-blank.
func (a JournalAnswers) Complete() bool {
	for _, s := range a {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}

func (e *JournalEntry) Complete() bool {
	return e != nil && e.Answers.Complete()
}
