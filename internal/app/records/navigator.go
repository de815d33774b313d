package records

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/PabloGalante/farum-calm/internal/app/greeting"
	"github.com/PabloGalante/farum-calm/internal/domain"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

// ErrSuperseded is returned to a caller whose resolve or save finished after
// the cursor had already moved on. Its result was not applied.
var ErrSuperseded = errors.New("navigator moved to another key")

// View is a snapshot of the active key as of its last resolve or save. A
// nil Entry with Loaded set means "no record yet": a blank, editable form.
// Entry is a copy for display; the store stays the source of truth, and
// Refresh re-reads it.
type View struct {
	Key    domain.MoodKey
	Entry  *domain.MoodEntry
	Loaded bool
	Err    error
}

type NavigatorOption func(*Navigator)

// WithNow overrides the clock used to compute "today".
func WithNow(now func() time.Time) NavigatorOption {
	return func(n *Navigator) { n.now = now }
}

// Navigator moves a (date, slot) cursor over the mood store. Every cursor
// change resolves the new key from the store; nothing is carried over from
// the previous key, and results for superseded keys are discarded.
type Navigator struct {
	store *Store
	now   func() time.Time

	mu     sync.Mutex
	key    domain.MoodKey
	gen    uint64
	cancel context.CancelFunc
	view   View
}

// NewNavigator starts at today with the slot suggested by the clock. Call
// Refresh to load the first record.
func NewNavigator(store *Store, opts ...NavigatorOption) *Navigator {
	n := &Navigator{store: store, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	now := n.now()
	n.key = domain.MoodKey{Date: domain.DateOf(now), Slot: greeting.DefaultSlot(now)}
	n.view = View{Key: n.key}
	return n
}

func (n *Navigator) Today() domain.Date {
	return domain.DateOf(n.now())
}

func (n *Navigator) Key() domain.MoodKey {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.key
}

func (n *Navigator) View() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.view
}

// Refresh re-resolves the current key.
func (n *Navigator) Refresh(ctx context.Context) (View, error) {
	return n.switchTo(ctx, n.Key())
}

// MoveTo moves the cursor to date. Dates after today are rejected: the
// cursor stays put and ok is false.
func (n *Navigator) MoveTo(ctx context.Context, date domain.Date) (ok bool, err error) {
	if _, err := domain.ParseDate(string(date)); err != nil {
		return false, err
	}
	if date.After(n.Today()) {
		observability.LoggerFromContext(ctx).Info("rejected move to future date", "date", date)
		return false, nil
	}

	key := n.Key()
	key.Date = date
	_, err = n.switchTo(ctx, key)
	return true, err
}

func (n *Navigator) Previous(ctx context.Context) error {
	_, err := n.MoveTo(ctx, n.Key().Date.AddDays(-1))
	return err
}

// Next moves one day forward, clamped at today.
func (n *Navigator) Next(ctx context.Context) (bool, error) {
	return n.MoveTo(ctx, n.Key().Date.AddDays(1))
}

// SetSlot switches between morning and evening for the current date and
// resolves the record of the new key.
func (n *Navigator) SetSlot(ctx context.Context, slot domain.Slot) error {
	key := n.Key()
	key.Slot = slot
	_, err := n.switchTo(ctx, key)
	return err
}

// Save persists draft under the current key. On failure the view is left
// as it was so the caller can retry with the same draft.
func (n *Navigator) Save(ctx context.Context, draft MoodDraft) (*domain.MoodEntry, error) {
	n.mu.Lock()
	key, gen := n.key, n.gen
	n.mu.Unlock()

	saved, err := n.store.SaveMood(ctx, draft.Entry(key))
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return saved, ErrSuperseded
	}
	n.view = View{Key: key, Entry: saved, Loaded: true}
	return saved, nil
}

func (n *Navigator) switchTo(ctx context.Context, key domain.MoodKey) (View, error) {
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
	}
	n.gen++
	gen := n.gen
	n.key = key
	n.view = View{Key: key}
	rctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.mu.Unlock()

	entry, err := n.store.ResolveMood(rctx, key)
	cancel()

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return View{Key: key}, ErrSuperseded
	}
	n.cancel = nil
	n.view = View{Key: key, Entry: entry, Loaded: err == nil, Err: err}
	return n.view, err
}
