package records

import "github.com/PabloGalante/farum-calm/internal/domain"

// MoodDraft is the editable form state of a check-in. It carries both
// slot-specific inputs; Entry keeps only the one matching the key's slot.
type MoodDraft struct {
	Mood         domain.Mood
	Energy       *domain.Level
	SleepQuality *domain.Level
	Anxiety      *domain.Level
	Note         string
}

// Entry builds the record to persist for key. The field of the other slot
// is dropped, never carried over.
func (d MoodDraft) Entry(key domain.MoodKey) domain.MoodEntry {
	e := domain.MoodEntry{
		Date:   key.Date,
		Mood:   d.Mood,
		Energy: d.Energy,
	}
	if d.Note != "" {
		note := d.Note
		e.Note = &note
	}

	switch key.Slot {
	case domain.SlotEvening:
		e.Details = domain.EveningDetails{Anxiety: d.Anxiety}
	default:
		e.Details = domain.MorningDetails{SleepQuality: d.SleepQuality}
	}
	return e
}

// DraftFrom pre-fills a form from a stored entry. A nil entry yields a blank draft.
func DraftFrom(e *domain.MoodEntry) MoodDraft {
	if e == nil {
		return MoodDraft{}
	}
	d := MoodDraft{
		Mood:         e.Mood,
		Energy:       e.Energy,
		SleepQuality: e.SleepQuality(),
		Anxiety:      e.Anxiety(),
	}
	if e.Note != nil {
		d.Note = *e.Note
	}
	return d
}
