// Package records implements the daily single-record store and the date
// navigator built on top of it.
package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/PabloGalante/farum-calm/internal/domain"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

// Store guarantees at most one persisted record per key.
//
// Save is lookup-then-branch and is not atomic against other writers. That
// is acceptable under the single-writer assumption (one user, one active
// session). Multi-device editing would need a conditional upsert keyed by a
// uniqueness constraint in the backend.
type Store struct {
	backend domain.RecordBackend
}

func NewStore(backend domain.RecordBackend) *Store {
	return &Store{backend: backend}
}

// ResolveMood returns the check-in for key, or nil when none exists yet.
// Read failures wrap domain.ErrTransientUnavailable.
func (s *Store) ResolveMood(ctx context.Context, key domain.MoodKey) (*domain.MoodEntry, error) {
	log := observability.LoggerFromContext(ctx).With("key", key.String())

	entry, err := s.backend.FindMood(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to resolve mood entry", "error", err)
		return nil, fmt.Errorf("%w: resolve mood %s: %w", domain.ErrTransientUnavailable, key, err)
	}
	return entry, nil
}

// SaveMood updates the existing record for the entry's key or creates one.
// Every field is written, so the field of the other slot is stored as absent.
// Write failures wrap domain.ErrPersistence and leave entry untouched.
func (s *Store) SaveMood(ctx context.Context, entry domain.MoodEntry) (*domain.MoodEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	key := entry.Key()
	log := observability.LoggerFromContext(ctx).With("key", key.String())

	existing, err := s.backend.FindMood(ctx, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		existing = nil
	case err != nil:
		log.Error("lookup before save failed", "error", err)
		return nil, fmt.Errorf("%w: save mood %s: %w", domain.ErrPersistence, key, err)
	}

	out := entry
	if existing != nil {
		out.ID = existing.ID
		out.CreatedAt = existing.CreatedAt
		if err := s.backend.UpdateMood(ctx, existing.ID, &out); err != nil {
			log.Error("failed to update mood entry", "id", existing.ID, "error", err)
			return nil, fmt.Errorf("%w: update mood %s: %w", domain.ErrPersistence, key, err)
		}
		log.Info("mood entry updated", "id", out.ID)
		return &out, nil
	}

	out.ID = ""
	if err := s.backend.InsertMood(ctx, &out); err != nil {
		log.Error("failed to insert mood entry", "error", err)
		return nil, fmt.Errorf("%w: insert mood %s: %w", domain.ErrPersistence, key, err)
	}
	log.Info("mood entry created", "id", out.ID)
	return &out, nil
}

// MoodHistory lists check-ins between from and to inclusive, oldest first.
func (s *Store) MoodHistory(ctx context.Context, from, to domain.Date) ([]*domain.MoodEntry, error) {
	if to.Before(from) {
		from, to = to, from
	}
	entries, err := s.backend.ListMoods(ctx, from, to)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list mood entries", "from", from, "to", to, "error", err)
		return nil, fmt.Errorf("%w: list moods: %w", domain.ErrTransientUnavailable, err)
	}
	return entries, nil
}

// ResolveJournal returns the journal entry of date, or nil when none exists.
func (s *Store) ResolveJournal(ctx context.Context, date domain.Date) (*domain.JournalEntry, error) {
	entry, err := s.backend.FindJournal(ctx, date)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to resolve journal entry", "date", date, "error", err)
		return nil, fmt.Errorf("%w: resolve journal %s: %w", domain.ErrTransientUnavailable, date, err)
	}
	return entry, nil
}

// SaveJournal stores answers as the journal entry of date, updating the
// existing record when there is one.
func (s *Store) SaveJournal(ctx context.Context, date domain.Date, answers domain.JournalAnswers) (*domain.JournalEntry, error) {
	if _, err := domain.ParseDate(string(date)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
	}
	log := observability.LoggerFromContext(ctx).With("date", date)

	existing, err := s.backend.FindJournal(ctx, date)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		existing = nil
	case err != nil:
		log.Error("lookup before save failed", "error", err)
		return nil, fmt.Errorf("%w: save journal %s: %w", domain.ErrPersistence, date, err)
	}

	out := domain.JournalEntry{Date: date, Answers: answers}
	if existing != nil {
		out.ID = existing.ID
		out.CreatedAt = existing.CreatedAt
		if err := s.backend.UpdateJournal(ctx, existing.ID, &out); err != nil {
			log.Error("failed to update journal entry", "id", existing.ID, "error", err)
			return nil, fmt.Errorf("%w: update journal %s: %w", domain.ErrPersistence, date, err)
		}
		log.Info("journal entry updated", "id", out.ID)
		return &out, nil
	}

	if err := s.backend.InsertJournal(ctx, &out); err != nil {
		log.Error("failed to insert journal entry", "error", err)
		return nil, fmt.Errorf("%w: insert journal %s: %w", domain.ErrPersistence, date, err)
	}
	log.Info("journal entry created", "id", out.ID)
	return &out, nil
}
