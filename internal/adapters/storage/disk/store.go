// Package disk keeps mood and journal records as JSON files under a local
// directory, one file per natural key.
package disk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

const (
	moodPrefix    = "mood"
	journalPrefix = "journal"
	sep           = "_"
)

type Store struct {
	d   *diskv.Diskv
	now func() time.Time

	mu sync.Mutex
}

// NewStore opens (or creates) a store rooted at basePath.
func NewStore(basePath string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		now: time.Now,
	}
}

// mood_2024-03-05_evening -> mood/2024-03-05/evening
// journal_2024-03-05      -> journal/2024-03-05
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, sep)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), sep)
}

func moodKey(k domain.MoodKey) string {
	return strings.Join([]string{moodPrefix, string(k.Date), string(k.Slot)}, sep)
}

func journalKey(d domain.Date) string {
	return journalPrefix + sep + string(d)
}

type moodRow struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Date      string    `json:"date"`
	TimeOfDay string    `json:"time_of_day"`
	Mood      string    `json:"mood"`
	Energy    *int      `json:"energy"`
	Anxiety   *int      `json:"anxiety"`
	Sleep     *int      `json:"sleep"`
	Note      *string   `json:"note"`
}

type journalRow struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Date      string    `json:"date"`
	Question1 string    `json:"question1"`
	Question2 string    `json:"question2"`
	Question3 string    `json:"question3"`
	Question4 string    `json:"question4"`
}

func toMoodRow(e *domain.MoodEntry) moodRow {
	return moodRow{
		ID:        string(e.ID),
		CreatedAt: e.CreatedAt,
		Date:      string(e.Date),
		TimeOfDay: string(e.Slot()),
		Mood:      string(e.Mood),
		Energy:    fromLevel(e.Energy),
		Anxiety:   fromLevel(e.Anxiety()),
		Sleep:     fromLevel(e.SleepQuality()),
		Note:      e.Note,
	}
}

func (r moodRow) entry() (*domain.MoodEntry, error) {
	slot, err := domain.ParseSlot(r.TimeOfDay)
	if err != nil {
		return nil, err
	}
	e := &domain.MoodEntry{
		ID:        domain.RecordID(r.ID),
		CreatedAt: r.CreatedAt,
		Date:      domain.Date(r.Date),
		Mood:      domain.Mood(r.Mood),
		Energy:    toLevel(r.Energy),
		Note:      r.Note,
	}
	if slot == domain.SlotEvening {
		e.Details = domain.EveningDetails{Anxiety: toLevel(r.Anxiety)}
	} else {
		e.Details = domain.MorningDetails{SleepQuality: toLevel(r.Sleep)}
	}
	return e, nil
}

func fromLevel(l *domain.Level) *int {
	if l == nil {
		return nil
	}
	v := int(*l)
	return &v
}

func toLevel(v *int) *domain.Level {
	if v == nil {
		return nil
	}
	l := domain.Level(*v)
	return &l
}

func (s *Store) read(key string, v any) error {
	data, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// ─────────────────────────────────────────
// MoodBackend implementation
// ─────────────────────────────────────────

func (s *Store) FindMood(_ context.Context, key domain.MoodKey) (*domain.MoodEntry, error) {
	var row moodRow
	if err := s.read(moodKey(key), &row); err != nil {
		return nil, err
	}
	return row.entry()
}

func (s *Store) InsertMood(_ context.Context, entry *domain.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := moodKey(entry.Key())
	if s.d.Has(key) {
		return fmt.Errorf("mood entry %s already exists", entry.Key())
	}

	row := toMoodRow(entry)
	row.ID = uuid.NewString()
	row.CreatedAt = s.now().UTC()
	if err := s.write(key, row); err != nil {
		return err
	}
	entry.ID = domain.RecordID(row.ID)
	entry.CreatedAt = row.CreatedAt
	return nil
}

func (s *Store) UpdateMood(_ context.Context, id domain.RecordID, entry *domain.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := moodKey(entry.Key())
	var existing moodRow
	if err := s.read(key, &existing); err != nil {
		return err
	}
	if existing.ID != string(id) {
		return fmt.Errorf("mood entry %s: %w", id, domain.ErrNotFound)
	}

	row := toMoodRow(entry)
	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	return s.write(key, row)
}

func (s *Store) ListMoods(ctx context.Context, from, to domain.Date) ([]*domain.MoodEntry, error) {
	keys, err := s.moodKeysBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.MoodEntry, 0, len(keys))
	for _, key := range keys {
		var row moodRow
		if err := s.read(key, &row); err != nil {
			return nil, err
		}
		e, err := row.entry()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, e)
	}

	domain.SortMoodEntries(out)
	return out, nil
}

// moodKeysBetween drains the key walk before any row is read, so the
// walker goroutine never outlives the call.
func (s *Store) moodKeysBetween(ctx context.Context, from, to domain.Date) ([]string, error) {
	cancel := make(chan struct{})
	defer close(cancel)

	var keys []string
	for key := range s.d.KeysPrefix(moodPrefix+sep, cancel) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pk := keyToPathTransform(key)
		if len(pk.Path) != 2 {
			continue
		}
		date := domain.Date(pk.Path[1])
		if date.Before(from) || date.After(to) {
			continue
		}
		keys = append(keys, key)
	}
	return keys, ctx.Err()
}

// ─────────────────────────────────────────
// JournalBackend implementation
// ─────────────────────────────────────────

func (s *Store) FindJournal(_ context.Context, date domain.Date) (*domain.JournalEntry, error) {
	var row journalRow
	if err := s.read(journalKey(date), &row); err != nil {
		return nil, err
	}
	return &domain.JournalEntry{
		ID:        domain.RecordID(row.ID),
		CreatedAt: row.CreatedAt,
		Date:      domain.Date(row.Date),
		Answers:   domain.JournalAnswers{row.Question1, row.Question2, row.Question3, row.Question4},
	}, nil
}

func (s *Store) InsertJournal(_ context.Context, entry *domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := journalKey(entry.Date)
	if s.d.Has(key) {
		return fmt.Errorf("journal entry %s already exists", entry.Date)
	}

	row := toJournalRow(entry)
	row.ID = uuid.NewString()
	row.CreatedAt = s.now().UTC()
	if err := s.write(key, row); err != nil {
		return err
	}
	entry.ID = domain.RecordID(row.ID)
	entry.CreatedAt = row.CreatedAt
	return nil
}

func (s *Store) UpdateJournal(_ context.Context, id domain.RecordID, entry *domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := journalKey(entry.Date)
	var existing journalRow
	if err := s.read(key, &existing); err != nil {
		return err
	}
	if existing.ID != string(id) {
		return fmt.Errorf("journal entry %s: %w", id, domain.ErrNotFound)
	}

	row := toJournalRow(entry)
	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	return s.write(key, row)
}

func toJournalRow(e *domain.JournalEntry) journalRow {
	return journalRow{
		Date:      string(e.Date),
		Question1: e.Answers[0],
		Question2: e.Answers[1],
		Question3: e.Answers[2],
		Question4: e.Answers[3],
	}
}

var _ domain.RecordBackend = (*Store)(nil)
