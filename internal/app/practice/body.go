package practice

import "github.com/PabloGalante/farum-calm/internal/domain"

type BodyState struct {
	SecondsLeft int
	Running     bool
	Done        bool
}

func (BodyState) Kind() domain.PracticeKind { return domain.KindBody }
func (s BodyState) IsRunning() bool         { return s.Running }
func (s BodyState) IsDone() bool            { return s.Done }

// Body is a single countdown shown next to static instructions.
type Body struct {
	practice domain.Practice
	state    BodyState
}

func newBody(p domain.Practice) *Body {
	b := &Body{practice: p}
	b.Reset()
	return b
}

func (b *Body) Practice() domain.Practice { return b.practice }
func (b *Body) Kind() domain.PracticeKind { return domain.KindBody }
func (b *Body) State() State              { return b.state }
func (b *Body) Snapshot() BodyState       { return b.state }
func (b *Body) Running() bool             { return b.state.Running }
func (b *Body) Done() bool                { return b.state.Done }

func (b *Body) Instructions() []string {
	return b.practice.BodySteps
}

func (b *Body) Start() {
	if b.state.Running || b.state.Done {
		return
	}
	b.state.Running = true
}

func (b *Body) Pause() {
	b.state.Running = false
}

func (b *Body) Reset() {
	b.state = BodyState{SecondsLeft: b.practice.TimerSeconds}
}

func (b *Body) Tick() Event {
	if !b.state.Running || b.state.Done {
		return EventNone
	}
	b.state.SecondsLeft--
	if b.state.SecondsLeft > 0 {
		return EventTick
	}
	b.state.SecondsLeft = 0
	b.state.Done = true
	b.state.Running = false
	return EventDone
}
