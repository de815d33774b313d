// Package greeting derives time-of-day text and defaults. Everything here is
// a pure function of the timestamp passed in; nothing is cached.
package greeting

import (
	"time"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

// EveningFrom is the hour at which check-ins default to the evening slot.
const EveningFrom = 15

// ForHome is the greeting shown on the home screen.
func ForHome(t time.Time) string {
	switch h := t.Hour(); {
	case h < 6:
		return "Can't sleep? I'm here."
	case h < 12:
		return "Good morning. How did your day start?"
	case h < 18:
		return "Good afternoon. How are you?"
	default:
		return "Good evening. How was your day?"
	}
}

// ForChat opens a new chat conversation.
func ForChat(t time.Time) string {
	switch h := t.Hour(); {
	case h < 6:
		return "Can't sleep? I'm here. What's on your mind?"
	case h < 12:
		return "Good morning. How are you today?"
	case h < 18:
		return "Hi. How is your day going?"
	default:
		return "Good evening. How are you?"
	}
}

// DefaultSlot suggests which check-in the user is most likely filling in.
func DefaultSlot(t time.Time) domain.Slot {
	if t.Hour() < EveningFrom {
		return domain.SlotMorning
	}
	return domain.SlotEvening
}
