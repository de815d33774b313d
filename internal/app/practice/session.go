package practice

import (
	"sync"
	"time"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

// Update is delivered to the tick observer after every timer-driven change.
type Update struct {
	State State
	Event Event
}

type Option func(*Session)

func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

// WithOnTick registers a callback run on the timer goroutine after each tick.
func WithOnTick(fn func(Update)) Option {
	return func(s *Session) { s.onTick = fn }
}

// Session owns an engine and the ticker that drives it. A ticker is held
// exactly while the engine is running: every transition into running
// acquires one, every transition out of it releases it synchronously.
type Session struct {
	mu       sync.Mutex
	engine   Engine
	clock    Clock
	interval time.Duration
	onTick   func(Update)

	ticker Ticker
	stop   chan struct{}
	gen    uint64 // current ticker; ticks from older ones are dropped
	closed bool
}

// NewSession validates p and builds its engine.
func NewSession(p domain.Practice, opts ...Option) (*Session, error) {
	engine, err := New(p)
	if err != nil {
		return nil, err
	}

	s := &Session{
		engine:   engine,
		clock:    RealClock(),
		interval: TickInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load replaces the current exercise. The old ticker is released first so it
// cannot touch the new engine's countdown.
func (s *Session) Load(p domain.Practice) error {
	engine, err := New(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.release()
	s.engine = engine
	s.closed = false
	return nil
}

func (s *Session) Practice() domain.Practice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Practice()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// TimerActive reports whether a ticker subscription is currently held.
func (s *Session) TimerActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker != nil
}

func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.engine.Start()
	if s.engine.Running() && s.ticker == nil {
		s.acquire()
	}
}

func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Pause()
	s.release()
}

// Toggle starts a stopped session and pauses a running one.
func (s *Session) Toggle() {
	s.mu.Lock()
	running := s.engine.Running()
	s.mu.Unlock()

	if running {
		s.Pause()
		return
	}
	s.Start()
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release()
	s.engine.Reset()
}

// Next advances user-paced engines. Timed engines ignore it.
func (s *Session) Next() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	stepper, ok := s.engine.(Stepper)
	if !ok {
		return EventNone
	}
	return stepper.Next()
}

// Close releases the ticker for good. The session ignores Start afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release()
	s.closed = true
}

func (s *Session) acquire() {
	t := s.clock.NewTicker(s.interval)
	stop := make(chan struct{})
	s.gen++
	s.ticker = t
	s.stop = stop
	go s.loop(t, stop, s.gen)
}

func (s *Session) release() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.ticker = nil
	s.stop = nil
	s.gen++
}

func (s *Session) loop(t Ticker, stop <-chan struct{}, gen uint64) {
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			s.tick(gen)
		}
	}
}

func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.ticker == nil {
		s.mu.Unlock()
		return
	}
	ev := s.engine.Tick()
	if !s.engine.Running() {
		s.release()
	}
	st := s.engine.State()
	fn := s.onTick
	s.mu.Unlock()

	if fn != nil && ev != EventNone {
		fn(Update{State: st, Event: ev})
	}
}
