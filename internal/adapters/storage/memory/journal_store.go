package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

// JournalStore is a simple in-memory journal_entries table.
// It is NOT persistent and is only suitable for development / local mode.
type JournalStore struct {
	mu     sync.RWMutex
	rows   map[domain.RecordID]*domain.JournalEntry
	byDate map[domain.Date][]domain.RecordID
	now    func() time.Time
}

func NewJournalStore() *JournalStore {
	return &JournalStore{
		rows:   make(map[domain.RecordID]*domain.JournalEntry),
		byDate: make(map[domain.Date][]domain.RecordID),
		now:    time.Now,
	}
}

func (s *JournalStore) FindJournal(_ context.Context, date domain.Date) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byDate[date]
	if len(ids) == 0 {
		return nil, domain.ErrNotFound
	}
	e := *s.rows[ids[0]]
	return &e, nil
}

func (s *JournalStore) InsertJournal(_ context.Context, entry *domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = domain.RecordID(uuid.NewString())
	entry.CreatedAt = s.now()

	row := *entry
	s.rows[row.ID] = &row
	s.byDate[row.Date] = append(s.byDate[row.Date], row.ID)
	return nil
}

func (s *JournalStore) UpdateJournal(_ context.Context, id domain.RecordID, entry *domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.rows[id]
	if !ok {
		return domain.ErrNotFound
	}

	row := *entry
	row.ID = id
	row.CreatedAt = old.CreatedAt
	if row.Date != old.Date {
		s.byDate[old.Date] = without(s.byDate[old.Date], id)
		s.byDate[row.Date] = append(s.byDate[row.Date], id)
	}
	s.rows[id] = &row
	return nil
}

// CountJournal returns how many rows exist for date.
func (s *JournalStore) CountJournal(date domain.Date) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byDate[date])
}
