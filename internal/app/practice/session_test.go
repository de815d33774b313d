package practice_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-calm/internal/app/practice"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (c *manualClock) NewTicker(time.Duration) practice.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) all() []*manualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*manualTicker, len(c.tickers))
	copy(out, c.tickers)
	return out
}

func (c *manualClock) live() int {
	n := 0
	for _, t := range c.all() {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

func (c *manualClock) latest(t *testing.T) *manualTicker {
	t.Helper()
	all := c.all()
	require.NotEmpty(t, all, "no ticker acquired")
	return all[len(all)-1]
}

// fire delivers one tick and reports whether a timer goroutine accepted it.
func fire(tk *manualTicker) bool {
	select {
	case tk.ch <- time.Now():
		return true
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

func newTestSession(t *testing.T, p domain.Practice) (*practice.Session, *manualClock, chan practice.Update) {
	t.Helper()
	clock := &manualClock{}
	updates := make(chan practice.Update, 256)
	s, err := practice.NewSession(p,
		practice.WithClock(clock),
		practice.WithOnTick(func(u practice.Update) { updates <- u }),
	)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, clock, updates
}

func waitUpdate(t *testing.T, updates <-chan practice.Update) practice.Update {
	t.Helper()
	select {
	case u := <-updates:
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick update")
		return practice.Update{}
	}
}

func TestSessionTimerLifetimeFollowsRunning(t *testing.T) {
	s, clock, updates := newTestSession(t, breathing478())

	assert.False(t, s.TimerActive())
	assert.Empty(t, clock.all())

	s.Start()
	s.Start()
	assert.True(t, s.TimerActive())
	assert.Len(t, clock.all(), 1, "a second start must not acquire another ticker")

	first := clock.latest(t)
	require.True(t, fire(first))
	u := waitUpdate(t, updates)
	assert.Equal(t, practice.EventTick, u.Event)
	assert.Equal(t, 3, u.State.(practice.BreathingState).SecondsLeft)

	s.Pause()
	assert.False(t, s.TimerActive())
	assert.True(t, first.isStopped())
	fire(first)
	assert.Equal(t, 3, s.State().(practice.BreathingState).SecondsLeft, "released ticker must not drive the engine")

	s.Start()
	assert.Len(t, clock.all(), 2)
	assert.Equal(t, 1, clock.live())

	s.Reset()
	assert.False(t, s.TimerActive())
	assert.Equal(t, 0, clock.live())
	assert.Equal(t, 4, s.State().(practice.BreathingState).SecondsLeft)
}

func TestSessionReleasesTimerOnCompletion(t *testing.T) {
	p := domain.Practice{
		ID:           "short",
		Kind:         domain.KindBody,
		BodySteps:    []string{"breathe"},
		TimerSeconds: 3,
	}
	s, clock, updates := newTestSession(t, p)
	s.Start()
	tk := clock.latest(t)

	var last practice.Update
	for i := 0; i < 3; i++ {
		require.True(t, fire(tk))
		last = waitUpdate(t, updates)
	}
	assert.Equal(t, practice.EventDone, last.Event)
	assert.True(t, last.State.IsDone())

	assert.False(t, s.TimerActive())
	assert.True(t, tk.isStopped())
	fire(tk)
	assert.Equal(t, last.State, s.State())

	s.Start()
	assert.False(t, s.TimerActive(), "done session must not reacquire a timer")
}

func TestSessionFullBreathingRun(t *testing.T) {
	s, clock, updates := newTestSession(t, breathing478())
	s.Start()
	tk := clock.latest(t)

	for i := 0; i < 76; i++ {
		require.True(t, fire(tk), "tick %d not accepted", i+1)
		waitUpdate(t, updates)
	}
	assert.True(t, s.State().IsDone())
	assert.False(t, s.TimerActive())
}

func TestSessionLoadSupersedesTimer(t *testing.T) {
	s, clock, _ := newTestSession(t, breathing478())
	s.Start()
	old := clock.latest(t)

	require.NoError(t, s.Load(domain.Practice{
		ID:           "next",
		Kind:         domain.KindBody,
		BodySteps:    []string{"stand"},
		TimerSeconds: 30,
	}))
	assert.True(t, old.isStopped())
	assert.False(t, s.TimerActive())
	assert.Equal(t, 30, s.State().(practice.BodyState).SecondsLeft)

	err := s.Load(domain.Practice{ID: "bad", Kind: domain.KindBody})
	require.ErrorIs(t, err, domain.ErrInvalidPractice)
	assert.Equal(t, "next", s.Practice().ID, "failed load keeps the current exercise")
}

func TestSessionCloseIsFinal(t *testing.T) {
	s, clock, _ := newTestSession(t, breathing478())
	s.Start()
	s.Close()
	assert.Equal(t, 0, clock.live())

	s.Start()
	assert.False(t, s.TimerActive())
}

func TestSessionNextDrivesGrounding(t *testing.T) {
	p := domain.Practice{
		ID:   "g",
		Kind: domain.KindGrounding,
		GroundingSteps: []domain.GroundingStep{
			{Count: 2, Sense: "see"},
			{Count: 1, Sense: "hear"},
		},
	}
	s, clock, _ := newTestSession(t, p)

	s.Start()
	assert.Empty(t, clock.all(), "grounding never holds a timer")

	assert.Equal(t, practice.EventStep, s.Next())
	assert.Equal(t, practice.EventDone, s.Next())
	assert.True(t, s.State().IsDone())
}

func TestSessionToggle(t *testing.T) {
	s, _, _ := newTestSession(t, breathing478())
	s.Toggle()
	assert.True(t, s.State().IsRunning())
	s.Toggle()
	assert.False(t, s.State().IsRunning())
	assert.False(t, s.TimerActive())
}
