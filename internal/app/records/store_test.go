package records_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-calm/internal/app/records"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

func TestResolveAbsentThenSaveEvening(t *testing.T) {
	ctx := context.Background()
	backend := newFaultyBackend()
	store := records.NewStore(backend)

	key := domain.MoodKey{Date: "2024-03-05", Slot: domain.SlotEvening}

	got, err := store.ResolveMood(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got, "no record yet is absent, not an error")

	draft := records.MoodDraft{Mood: domain.MoodCalm, Anxiety: domain.LevelPtr(2), SleepQuality: domain.LevelPtr(5)}
	_, err = store.SaveMood(ctx, draft.Entry(key))
	require.NoError(t, err)

	got, err = store.ResolveMood(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.MoodCalm, got.Mood)
	assert.Equal(t, domain.Level(2), *got.Anxiety())
	assert.Nil(t, got.SleepQuality())
}

func TestSaveTwiceKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	backend := newFaultyBackend()
	store := records.NewStore(backend)
	key := domain.MoodKey{Date: "2024-03-05", Slot: domain.SlotMorning}

	first, err := store.SaveMood(ctx, records.MoodDraft{Mood: domain.MoodSad}.Entry(key))
	require.NoError(t, err)
	assert.Equal(t, 1, backend.CountMood(key))

	second, err := store.SaveMood(ctx, records.MoodDraft{Mood: domain.MoodGood, Energy: domain.LevelPtr(4)}.Entry(key))
	require.NoError(t, err)
	assert.Equal(t, 1, backend.CountMood(key))
	assert.Equal(t, first.ID, second.ID)

	got, err := store.ResolveMood(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, domain.MoodGood, got.Mood)
	assert.Equal(t, domain.Level(4), *got.Energy)
}

func TestSaveWritesAbsentFieldsExplicitly(t *testing.T) {
	ctx := context.Background()
	store := records.NewStore(newFaultyBackend())
	key := domain.MoodKey{Date: "2024-03-05", Slot: domain.SlotMorning}

	note := "slept badly"
	_, err := store.SaveMood(ctx, domain.MoodEntry{
		Date:    key.Date,
		Mood:    domain.MoodNeutral,
		Energy:  domain.LevelPtr(2),
		Note:    &note,
		Details: domain.MorningDetails{SleepQuality: domain.LevelPtr(1)},
	})
	require.NoError(t, err)

	_, err = store.SaveMood(ctx, records.MoodDraft{Mood: domain.MoodGood}.Entry(key))
	require.NoError(t, err)

	got, err := store.ResolveMood(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got.Energy, "fields are replaced, not merged from the prior value")
	assert.Nil(t, got.Note)
	assert.Nil(t, got.SleepQuality())
}

func TestSlotsNeverCrossContaminate(t *testing.T) {
	ctx := context.Background()
	store := records.NewStore(newFaultyBackend())
	date := domain.Date("2024-03-05")

	// One form carrying both inputs, saved under each slot.
	draft := records.MoodDraft{
		Mood:         domain.MoodAnxious,
		SleepQuality: domain.LevelPtr(3),
		Anxiety:      domain.LevelPtr(5),
	}
	morningKey := domain.MoodKey{Date: date, Slot: domain.SlotMorning}
	eveningKey := domain.MoodKey{Date: date, Slot: domain.SlotEvening}

	_, err := store.SaveMood(ctx, draft.Entry(morningKey))
	require.NoError(t, err)
	_, err = store.SaveMood(ctx, draft.Entry(eveningKey))
	require.NoError(t, err)

	morning, err := store.ResolveMood(ctx, morningKey)
	require.NoError(t, err)
	evening, err := store.ResolveMood(ctx, eveningKey)
	require.NoError(t, err)

	assert.Nil(t, morning.Anxiety())
	assert.Equal(t, domain.Level(3), *morning.SleepQuality())
	assert.Nil(t, evening.SleepQuality())
	assert.Equal(t, domain.Level(5), *evening.Anxiety())
	assert.NotEqual(t, morning.ID, evening.ID)
}

func TestResolveFailureIsTransient(t *testing.T) {
	ctx := context.Background()
	backend := newFaultyBackend()
	backend.setFindErr(errBackendDown)
	store := records.NewStore(backend)

	_, err := store.ResolveMood(ctx, domain.MoodKey{Date: "2024-03-05", Slot: domain.SlotMorning})
	require.ErrorIs(t, err, domain.ErrTransientUnavailable)
	require.ErrorIs(t, err, errBackendDown)

	_, err = store.ResolveJournal(ctx, "2024-03-05")
	require.ErrorIs(t, err, domain.ErrTransientUnavailable)
}

func TestSaveFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	backend := newFaultyBackend()
	backend.setWriteErr(errBackendDown)
	store := records.NewStore(backend)
	key := domain.MoodKey{Date: "2024-03-05", Slot: domain.SlotMorning}

	entry := records.MoodDraft{Mood: domain.MoodCalm}.Entry(key)
	_, err := store.SaveMood(ctx, entry)
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, entry.ID, "caller's entry is left unchanged")
	assert.Equal(t, 0, backend.CountMood(key))

	backend.setWriteErr(nil)
	_, err = store.SaveMood(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.CountMood(key))
}

func TestSaveRejectsInvalidEntry(t *testing.T) {
	store := records.NewStore(newFaultyBackend())
	_, err := store.SaveMood(context.Background(), domain.MoodEntry{
		Date:    "2024-03-05",
		Mood:    "ecstatic",
		Details: domain.MorningDetails{},
	})
	require.ErrorIs(t, err, domain.ErrInvalidRecord)
	assert.NotErrorIs(t, err, domain.ErrPersistence)
}

func TestSaveJournalUpserts(t *testing.T) {
	ctx := context.Background()
	backend := newFaultyBackend()
	store := records.NewStore(backend)

	first, err := store.SaveJournal(ctx, "2024-03-05", domain.JournalAnswers{"a", "b"})
	require.NoError(t, err)
	second, err := store.SaveJournal(ctx, "2024-03-05", domain.JournalAnswers{"a", "b", "c", "d"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, backend.CountJournal("2024-03-05"))

	got, err := store.ResolveJournal(ctx, "2024-03-05")
	require.NoError(t, err)
	assert.True(t, got.Complete())
}

func TestMoodHistory(t *testing.T) {
	ctx := context.Background()
	store := records.NewStore(newFaultyBackend())

	for _, d := range []domain.Date{"2024-03-01", "2024-03-03", "2024-03-09"} {
		_, err := store.SaveMood(ctx, records.MoodDraft{Mood: domain.MoodGood}.Entry(domain.MoodKey{Date: d, Slot: domain.SlotMorning}))
		require.NoError(t, err)
	}

	got, err := store.MoodHistory(ctx, "2024-03-07", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Date("2024-03-01"), got[0].Date)
	assert.Equal(t, domain.Date("2024-03-03"), got[1].Date)
}
