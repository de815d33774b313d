package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

const (
	moodCollection    = "mood_entries"
	journalCollection = "journal_entries"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (FARUM_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type moodDoc struct {
	Date      string    `firestore:"date"`
	TimeOfDay string    `firestore:"time_of_day"`
	Mood      string    `firestore:"mood"`
	Energy    *int64    `firestore:"energy"`
	Anxiety   *int64    `firestore:"anxiety"`
	Sleep     *int64    `firestore:"sleep"`
	Note      *string   `firestore:"note"`
	CreatedAt time.Time `firestore:"created_at,serverTimestamp"`
}

type journalDoc struct {
	Date      string    `firestore:"date"`
	Question1 *string   `firestore:"question1"`
	Question2 *string   `firestore:"question2"`
	Question3 *string   `firestore:"question3"`
	Question4 *string   `firestore:"question4"`
	CreatedAt time.Time `firestore:"created_at,serverTimestamp"`
}

func toMoodDoc(e *domain.MoodEntry) moodDoc {
	return moodDoc{
		Date:      string(e.Date),
		TimeOfDay: string(e.Slot()),
		Mood:      string(e.Mood),
		Energy:    fromLevel(e.Energy),
		Anxiety:   fromLevel(e.Anxiety()),
		Sleep:     fromLevel(e.SleepQuality()),
		Note:      e.Note,
	}
}

// moodFields is the update payload. The field of the other slot is written
// as an explicit null so a slot change never leaves stale data behind.
func moodFields(e *domain.MoodEntry) map[string]interface{} {
	d := toMoodDoc(e)
	return map[string]interface{}{
		"date":        d.Date,
		"time_of_day": d.TimeOfDay,
		"mood":        d.Mood,
		"energy":      d.Energy,
		"anxiety":     d.Anxiety,
		"sleep":       d.Sleep,
		"note":        d.Note,
	}
}

func fromMoodDoc(id string, d moodDoc) (*domain.MoodEntry, error) {
	slot, err := domain.ParseSlot(d.TimeOfDay)
	if err != nil {
		return nil, fmt.Errorf("mood entry %s: %w", id, err)
	}

	e := &domain.MoodEntry{
		ID:        domain.RecordID(id),
		CreatedAt: d.CreatedAt,
		Date:      domain.Date(d.Date),
		Mood:      domain.Mood(d.Mood),
		Energy:    toLevel(d.Energy),
		Note:      d.Note,
	}
	if slot == domain.SlotEvening {
		e.Details = domain.EveningDetails{Anxiety: toLevel(d.Anxiety)}
	} else {
		e.Details = domain.MorningDetails{SleepQuality: toLevel(d.Sleep)}
	}
	return e, nil
}

func toJournalDoc(e *domain.JournalEntry) journalDoc {
	return journalDoc{
		Date:      string(e.Date),
		Question1: nullable(e.Answers[0]),
		Question2: nullable(e.Answers[1]),
		Question3: nullable(e.Answers[2]),
		Question4: nullable(e.Answers[3]),
	}
}

func fromJournalDoc(id string, d journalDoc) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:        domain.RecordID(id),
		CreatedAt: d.CreatedAt,
		Date:      domain.Date(d.Date),
		Answers: domain.JournalAnswers{
			deref(d.Question1),
			deref(d.Question2),
			deref(d.Question3),
			deref(d.Question4),
		},
	}
}

func fromLevel(l *domain.Level) *int64 {
	if l == nil {
		return nil
	}
	v := int64(*l)
	return &v
}

func toLevel(v *int64) *domain.Level {
	if v == nil {
		return nil
	}
	l := domain.Level(*v)
	return &l
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// classify maps a NotFound status to domain.ErrNotFound and keeps the
// original error otherwise.
func classify(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("firestore %s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("firestore %s: %w", op, err)
}

// first returns the only document of q, or domain.ErrNotFound. Keys are
// unique only under the single writer of records.Store; if duplicates ever
// exist, Limit(1) picks one and the rest go unseen.
func first(ctx context.Context, q firestore.Query) (*firestore.DocumentSnapshot, error) {
	iter := q.Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, domain.ErrNotFound
	}
	return snap, err
}

// ─────────────────────────────────────────
// MoodBackend implementation
// ─────────────────────────────────────────

func (s *Store) FindMood(ctx context.Context, key domain.MoodKey) (*domain.MoodEntry, error) {
	q := s.client.Collection(moodCollection).
		Where("date", "==", string(key.Date)).
		Where("time_of_day", "==", string(key.Slot))

	snap, err := first(ctx, q)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, classify("FindMood", err)
	}

	var doc moodDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode moodDoc: %w", err)
	}
	return fromMoodDoc(snap.Ref.ID, doc)
}

func (s *Store) InsertMood(ctx context.Context, entry *domain.MoodEntry) error {
	ref, wr, err := s.client.Collection(moodCollection).Add(ctx, toMoodDoc(entry))
	if err != nil {
		return classify("InsertMood", err)
	}
	entry.ID = domain.RecordID(ref.ID)
	entry.CreatedAt = wr.UpdateTime
	return nil
}

func (s *Store) UpdateMood(ctx context.Context, id domain.RecordID, entry *domain.MoodEntry) error {
	_, err := s.client.Collection(moodCollection).Doc(string(id)).Set(ctx, moodFields(entry), firestore.MergeAll)
	if err != nil {
		return classify("UpdateMood", err)
	}
	return nil
}

func (s *Store) ListMoods(ctx context.Context, from, to domain.Date) ([]*domain.MoodEntry, error) {
	q := s.client.Collection(moodCollection).
		Where("date", ">=", string(from)).
		Where("date", "<=", string(to)).
		OrderBy("date", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.MoodEntry
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, classify("ListMoods", err)
		}

		var doc moodDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode moodDoc: %w", err)
		}
		e, err := fromMoodDoc(snap.Ref.ID, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	domain.SortMoodEntries(out)
	return out, nil
}

// ─────────────────────────────────────────
// JournalBackend implementation
// ─────────────────────────────────────────

func (s *Store) FindJournal(ctx context.Context, date domain.Date) (*domain.JournalEntry, error) {
	q := s.client.Collection(journalCollection).Where("date", "==", string(date))

	snap, err := first(ctx, q)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, classify("FindJournal", err)
	}

	var doc journalDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode journalDoc: %w", err)
	}
	return fromJournalDoc(snap.Ref.ID, doc), nil
}

func (s *Store) InsertJournal(ctx context.Context, entry *domain.JournalEntry) error {
	ref, wr, err := s.client.Collection(journalCollection).Add(ctx, toJournalDoc(entry))
	if err != nil {
		return classify("InsertJournal", err)
	}
	entry.ID = domain.RecordID(ref.ID)
	entry.CreatedAt = wr.UpdateTime
	return nil
}

func (s *Store) UpdateJournal(ctx context.Context, id domain.RecordID, entry *domain.JournalEntry) error {
	d := toJournalDoc(entry)
	fields := map[string]interface{}{
		"date":      d.Date,
		"question1": d.Question1,
		"question2": d.Question2,
		"question3": d.Question3,
		"question4": d.Question4,
	}

	_, err := s.client.Collection(journalCollection).Doc(string(id)).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return classify("UpdateJournal", err)
	}
	return nil
}

var _ domain.RecordBackend = (*Store)(nil)
