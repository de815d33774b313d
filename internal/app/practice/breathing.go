package practice

import "github.com/PabloGalante/farum-calm/internal/domain"

// BreathingState is the state of a paced breathing exercise.
// CycleIndex is 1-based.
type BreathingState struct {
	StepIndex   int
	CycleIndex  int
	SecondsLeft int
	Running     bool
	Done        bool
}

func (BreathingState) Kind() domain.PracticeKind { return domain.KindBreathing }
func (s BreathingState) IsRunning() bool         { return s.Running }
func (s BreathingState) IsDone() bool            { return s.Done }

// Breathing walks the step sequence Cycles times.
//
// States are Idle, Running, Paused and Done. Done is reached only from
// Running by the completion tick and stays until Reset.
type Breathing struct {
	practice domain.Practice
	state    BreathingState
}

func newBreathing(p domain.Practice) *Breathing {
	b := &Breathing{practice: p}
	b.Reset()
	return b
}

func (b *Breathing) Practice() domain.Practice { return b.practice }
func (b *Breathing) Kind() domain.PracticeKind { return domain.KindBreathing }
func (b *Breathing) State() State              { return b.state }
func (b *Breathing) Snapshot() BreathingState  { return b.state }
func (b *Breathing) Running() bool             { return b.state.Running }
func (b *Breathing) Done() bool                { return b.state.Done }

// CurrentStep is the step being played.
func (b *Breathing) CurrentStep() domain.BreathingStep {
	return b.practice.Steps[b.state.StepIndex]
}

func (b *Breathing) Start() {
	if b.state.Running || b.state.Done {
		return
	}
	b.state.Running = true
}

func (b *Breathing) Pause() {
	b.state.Running = false
}

func (b *Breathing) Reset() {
	b.state = BreathingState{
		StepIndex:   0,
		CycleIndex:  1,
		SecondsLeft: b.practice.Steps[0].DurationSeconds,
	}
}

// Tick decrements the countdown. At zero it moves to the next step,
// wrapping into the next cycle; the completion check runs after the wrap so
// the last step of the last cycle plays in full.
func (b *Breathing) Tick() Event {
	if !b.state.Running || b.state.Done {
		return EventNone
	}

	b.state.SecondsLeft--
	if b.state.SecondsLeft > 0 {
		return EventTick
	}

	steps := b.practice.Steps
	next := b.state.StepIndex + 1
	if next < len(steps) {
		b.state.StepIndex = next
		b.state.SecondsLeft = steps[next].DurationSeconds
		return EventStep
	}

	if b.state.CycleIndex+1 > b.practice.Cycles {
		b.state.Done = true
		b.state.Running = false
		b.state.SecondsLeft = 0
		return EventDone
	}

	b.state.CycleIndex++
	b.state.StepIndex = 0
	b.state.SecondsLeft = steps[0].DurationSeconds
	return EventCycle
}
