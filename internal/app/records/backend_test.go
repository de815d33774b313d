package records_test

import (
	"context"
	"errors"
	"sync"

	"github.com/PabloGalante/farum-calm/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

var errBackendDown = errors.New("connection refused")

// faultyBackend wraps the memory store with injectable failures and a gate
// that holds FindMood for chosen keys until released.
type faultyBackend struct {
	*memory.Store

	mu        sync.Mutex
	findErr   error
	insertErr error
	updateErr error
	gates     map[domain.MoodKey]chan struct{}
	entered   chan domain.MoodKey
}

func newFaultyBackend() *faultyBackend {
	return &faultyBackend{
		Store:   memory.NewStore(),
		gates:   make(map[domain.MoodKey]chan struct{}),
		entered: make(chan domain.MoodKey, 16),
	}
}

func (b *faultyBackend) setFindErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.findErr = err
}

func (b *faultyBackend) setWriteErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.insertErr = err
	b.updateErr = err
}

// hold makes FindMood for key block until the returned func is called.
func (b *faultyBackend) hold(key domain.MoodKey) (release func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan struct{})
	b.gates[key] = ch
	return func() { close(ch) }
}

func (b *faultyBackend) FindMood(ctx context.Context, key domain.MoodKey) (*domain.MoodEntry, error) {
	b.mu.Lock()
	gate := b.gates[key]
	delete(b.gates, key)
	err := b.findErr
	b.mu.Unlock()

	if gate != nil {
		b.entered <- key
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return b.Store.FindMood(ctx, key)
}

func (b *faultyBackend) InsertMood(ctx context.Context, e *domain.MoodEntry) error {
	b.mu.Lock()
	err := b.insertErr
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return b.Store.InsertMood(ctx, e)
}

func (b *faultyBackend) UpdateMood(ctx context.Context, id domain.RecordID, e *domain.MoodEntry) error {
	b.mu.Lock()
	err := b.updateErr
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return b.Store.UpdateMood(ctx, id, e)
}

func (b *faultyBackend) FindJournal(ctx context.Context, date domain.Date) (*domain.JournalEntry, error) {
	b.mu.Lock()
	err := b.findErr
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return b.Store.FindJournal(ctx, date)
}

func (b *faultyBackend) InsertJournal(ctx context.Context, e *domain.JournalEntry) error {
	b.mu.Lock()
	err := b.insertErr
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return b.Store.InsertJournal(ctx, e)
}
