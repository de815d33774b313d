package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

// MoodStore is an in-memory mood_entries table. It is NOT persistent and is
// only suitable for development / local mode. Rows are copied in and out so
// callers never share memory with the table.
type MoodStore struct {
	mu    sync.RWMutex
	rows  map[domain.RecordID]*domain.MoodEntry
	byKey map[domain.MoodKey][]domain.RecordID
	now   func() time.Time
}

func NewMoodStore() *MoodStore {
	return &MoodStore{
		rows:  make(map[domain.RecordID]*domain.MoodEntry),
		byKey: make(map[domain.MoodKey][]domain.RecordID),
		now:   time.Now,
	}
}

func (s *MoodStore) FindMood(_ context.Context, key domain.MoodKey) (*domain.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byKey[key]
	if len(ids) == 0 {
		return nil, domain.ErrNotFound
	}
	return copyMood(s.rows[ids[0]]), nil
}

func (s *MoodStore) InsertMood(_ context.Context, entry *domain.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = domain.RecordID(uuid.NewString())
	entry.CreatedAt = s.now()

	key := entry.Key()
	s.rows[entry.ID] = copyMood(entry)
	s.byKey[key] = append(s.byKey[key], entry.ID)
	return nil
}

func (s *MoodStore) UpdateMood(_ context.Context, id domain.RecordID, entry *domain.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.rows[id]
	if !ok {
		return domain.ErrNotFound
	}

	row := copyMood(entry)
	row.ID = id
	row.CreatedAt = old.CreatedAt

	if oldKey, newKey := old.Key(), row.Key(); oldKey != newKey {
		s.byKey[oldKey] = without(s.byKey[oldKey], id)
		s.byKey[newKey] = append(s.byKey[newKey], id)
	}
	s.rows[id] = row
	return nil
}

func (s *MoodStore) ListMoods(_ context.Context, from, to domain.Date) ([]*domain.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.MoodEntry{}
	for _, row := range s.rows {
		if row.Date.Before(from) || row.Date.After(to) {
			continue
		}
		out = append(out, copyMood(row))
	}
	domain.SortMoodEntries(out)
	return out, nil
}

// CountMood returns how many rows exist for key.
func (s *MoodStore) CountMood(key domain.MoodKey) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey[key])
}

func copyMood(e *domain.MoodEntry) *domain.MoodEntry {
	if e == nil {
		return nil
	}
	c := *e
	c.Energy = copyLevel(e.Energy)
	if e.Note != nil {
		n := *e.Note
		c.Note = &n
	}
	switch d := e.Details.(type) {
	case domain.MorningDetails:
		c.Details = domain.MorningDetails{SleepQuality: copyLevel(d.SleepQuality)}
	case domain.EveningDetails:
		c.Details = domain.EveningDetails{Anxiety: copyLevel(d.Anxiety)}
	}
	return &c
}

func copyLevel(l *domain.Level) *domain.Level {
	if l == nil {
		return nil
	}
	v := *l
	return &v
}

func without(ids []domain.RecordID, id domain.RecordID) []domain.RecordID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
