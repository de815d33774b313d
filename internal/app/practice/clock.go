package practice

import "time"

// TickInterval is the nominal length of one exercise second.
const TickInterval = time.Second

// Ticker is a recurring timer subscription. Stop releases it.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock hands out tickers. Tests substitute a manual clock.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

// RealClock returns a Clock backed by time.Ticker.
func RealClock() Clock { return realClock{} }

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
