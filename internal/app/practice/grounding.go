package practice

import "github.com/PabloGalante/farum-calm/internal/domain"

type GroundingState struct {
	StepIndex int
	Done      bool
}

func (GroundingState) Kind() domain.PracticeKind { return domain.KindGrounding }
func (GroundingState) IsRunning() bool           { return false }
func (s GroundingState) IsDone() bool            { return s.Done }

// Grounding is user-paced: Next advances, time does not.
type Grounding struct {
	practice domain.Practice
	state    GroundingState
}

func newGrounding(p domain.Practice) *Grounding {
	return &Grounding{practice: p}
}

func (g *Grounding) Practice() domain.Practice { return g.practice }
func (g *Grounding) Kind() domain.PracticeKind { return domain.KindGrounding }
func (g *Grounding) State() State              { return g.state }
func (g *Grounding) Snapshot() GroundingState  { return g.state }
func (g *Grounding) Running() bool             { return false }
func (g *Grounding) Done() bool                { return g.state.Done }

// Start, Pause and Tick do nothing: grounding has no timer.
func (g *Grounding) Start() {}

func (g *Grounding) Pause() {}

func (g *Grounding) Tick() Event {
	return EventNone
}

func (g *Grounding) Reset() {
	g.state = GroundingState{}
}

// CurrentStep is the prompt on screen. After completion it stays on the last step.
func (g *Grounding) CurrentStep() domain.GroundingStep {
	return g.practice.GroundingSteps[g.state.StepIndex]
}

// Next confirms the current prompt. Confirming the last one completes the
// exercise instead of indexing past the sequence.
func (g *Grounding) Next() Event {
	if g.state.Done {
		return EventNone
	}
	if g.state.StepIndex+1 >= len(g.practice.GroundingSteps) {
		g.state.Done = true
		return EventDone
	}
	g.state.StepIndex++
	return EventStep
}
