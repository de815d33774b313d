package journal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-calm/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-calm/internal/app/journal"
	"github.com/PabloGalante/farum-calm/internal/app/records"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

const day = domain.Date("2024-03-05")

type flakyStore struct {
	*records.Store
	saveErr error
	saves   int
}

func (s *flakyStore) SaveJournal(ctx context.Context, date domain.Date, a domain.JournalAnswers) (*domain.JournalEntry, error) {
	s.saves++
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return s.Store.SaveJournal(ctx, date, a)
}

func newStore() *flakyStore {
	return &flakyStore{Store: records.NewStore(memory.NewStore())}
}

func answerAll(t *testing.T, w *journal.Walkthrough, ctx context.Context) {
	t.Helper()
	for i := 0; i < domain.JournalQuestions-1; i++ {
		w.SetAnswer("answer")
		require.NoError(t, w.Advance(ctx))
	}
	w.SetAnswer("last answer")
}

func TestWalkthroughHappyPath(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	w, err := journal.Open(ctx, store, day)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Step())
	assert.False(t, w.Complete())
	assert.Equal(t, journal.Questions[0], w.Question())

	answerAll(t, w, ctx)
	assert.Equal(t, 4, w.Step())
	assert.Equal(t, 0, store.saves, "nothing is saved before the last step")

	require.NoError(t, w.Advance(ctx))
	assert.True(t, w.Complete())
	assert.Equal(t, 1, store.saves)

	saved, err := store.ResolveJournal(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "last answer", saved.Answers[3])
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	ctx := context.Background()
	w, err := journal.Open(ctx, newStore(), day)
	require.NoError(t, err)

	require.ErrorIs(t, w.Advance(ctx), journal.ErrAnswerRequired)
	w.SetAnswer("   \n\t")
	require.ErrorIs(t, w.Advance(ctx), journal.ErrAnswerRequired)
	assert.Equal(t, 1, w.Step())
}

func TestBackNeverValidatesOrSaves(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	w, err := journal.Open(ctx, store, day)
	require.NoError(t, err)

	assert.False(t, w.Back())

	answerAll(t, w, ctx)
	w.SetAnswer("")
	assert.True(t, w.Back())
	assert.Equal(t, 3, w.Step())
	assert.Equal(t, "answer", w.Answer())
	assert.Equal(t, 0, store.saves)
}

func TestSaveFailureKeepsAnswers(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	store.saveErr = errors.New("write failed")

	w, err := journal.Open(ctx, store, day)
	require.NoError(t, err)
	answerAll(t, w, ctx)
	before := w.Answers()

	require.Error(t, w.Advance(ctx))
	assert.False(t, w.Complete())
	assert.Equal(t, 4, w.Step())
	assert.Equal(t, before, w.Answers())

	store.saveErr = nil
	require.NoError(t, w.Advance(ctx))
	assert.True(t, w.Complete())
}

func TestOpenExistingEntry(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	_, err := store.Store.SaveJournal(ctx, day, domain.JournalAnswers{"a", "b", "c", "d"})
	require.NoError(t, err)

	w, err := journal.Open(ctx, store, day)
	require.NoError(t, err)
	assert.True(t, w.Complete())

	w.Edit()
	assert.False(t, w.Complete())
	assert.Equal(t, 1, w.Step())
	assert.Equal(t, "a", w.Answer())

	partial := domain.Date("2024-03-04")
	_, err = store.Store.SaveJournal(ctx, partial, domain.JournalAnswers{"a", "", "", ""})
	require.NoError(t, err)
	w, err = journal.Open(ctx, store, partial)
	require.NoError(t, err)
	assert.False(t, w.Complete())
	assert.Equal(t, "a", w.Answer())
}

func TestResavingUpdatesSameEntry(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	store := records.NewStore(backend)

	for _, last := range []string{"first", "second"} {
		w, err := journal.Open(ctx, store, day)
		require.NoError(t, err)
		if w.Complete() {
			w.Edit()
		}
		answerAll(t, w, ctx)
		w.SetAnswer(last)
		require.NoError(t, w.Advance(ctx))
	}

	assert.Equal(t, 1, backend.CountJournal(day))
	got, err := store.ResolveJournal(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Answers[3])
}

func TestOpenRejectsFutureDate(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	now := func() time.Time { return time.Date(2024, 3, 5, 21, 0, 0, 0, time.UTC) }

	_, err := journal.Open(ctx, store, "2024-03-06", journal.WithNow(now))
	require.ErrorIs(t, err, domain.ErrInvalidRecord)
	assert.Zero(t, store.saves)

	w, err := journal.Open(ctx, store, day, journal.WithNow(now))
	require.NoError(t, err)
	assert.Equal(t, day, w.Date())
}
