// Package practice drives guided exercises. Each practice kind has its own
// tick-driven state machine behind the Engine contract; Session binds an
// engine to a cancellable one-second ticker.
package practice

import (
	"github.com/PabloGalante/farum-calm/internal/domain"
)

// Event reports what a Tick or Next did to the state.
type Event int

const (
	EventNone Event = iota
	// EventTick: time elapsed within the current step.
	EventTick
	// EventStep: moved to the next step of the same cycle.
	EventStep
	// EventCycle: wrapped to the first step of the next cycle.
	EventCycle
	// EventDone: the exercise completed. Terminal until Reset.
	EventDone
)

func (e Event) String() string {
	switch e {
	case EventTick:
		return "tick"
	case EventStep:
		return "step"
	case EventCycle:
		return "cycle"
	case EventDone:
		return "done"
	default:
		return "none"
	}
}

// Boundary reports whether the event crossed a step boundary.
func (e Event) Boundary() bool {
	return e == EventStep || e == EventCycle || e == EventDone
}

// State is a snapshot of an engine's SessionState. The concrete type is
// BreathingState, GroundingState or BodyState.
type State interface {
	Kind() domain.PracticeKind
	IsRunning() bool
	IsDone() bool
}

// Engine is the contract shared by every practice kind. All methods are
// total: they never fail and are no-ops when the transition does not apply.
type Engine interface {
	Practice() domain.Practice
	Kind() domain.PracticeKind

	// Start moves to running. No-op when running or done.
	Start()
	// Pause leaves running. No-op when not running.
	Pause()
	// Tick advances one second of exercise time. No-op unless running.
	Tick() Event
	// Reset recreates the initial state for the same practice.
	Reset()

	State() State
	Running() bool
	Done() bool
}

// Stepper is implemented by engines advanced by the user instead of time.
type Stepper interface {
	Next() Event
}

// New builds the engine matching p.Kind. A practice missing its
// kind-specific fields yields a *domain.ConfigurationError.
func New(p domain.Practice) (Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch p.Kind {
	case domain.KindBreathing:
		return newBreathing(p), nil
	case domain.KindGrounding:
		return newGrounding(p), nil
	default:
		return newBody(p), nil
	}
}
