package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-calm/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

var _ domain.RecordBackend = (*memory.Store)(nil)

func TestMoodRowsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	entry := &domain.MoodEntry{
		Date:    "2024-03-05",
		Mood:    domain.MoodCalm,
		Energy:  domain.LevelPtr(3),
		Details: domain.MorningDetails{SleepQuality: domain.LevelPtr(4)},
	}
	require.NoError(t, s.InsertMood(ctx, entry))
	require.NotEmpty(t, entry.ID)
	require.False(t, entry.CreatedAt.IsZero())

	*entry.Energy = 1

	got, err := s.FindMood(ctx, entry.Key())
	require.NoError(t, err)
	assert.Equal(t, domain.Level(3), *got.Energy, "caller mutation must not reach the table")

	*got.Energy = 5
	again, err := s.FindMood(ctx, entry.Key())
	require.NoError(t, err)
	assert.Equal(t, domain.Level(3), *again.Energy)
}

func TestFindMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	_, err := s.FindMood(ctx, domain.MoodKey{Date: "2024-03-05", Slot: domain.SlotEvening})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.FindJournal(ctx, "2024-03-05")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.UpdateMood(ctx, "missing", &domain.MoodEntry{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	j := &domain.JournalEntry{Date: "2024-03-05", Answers: domain.JournalAnswers{"a"}}
	require.NoError(t, s.InsertJournal(ctx, j))

	upd := &domain.JournalEntry{Date: "2024-03-05", Answers: domain.JournalAnswers{"a", "b", "c", "d"}}
	require.NoError(t, s.UpdateJournal(ctx, j.ID, upd))

	got, err := s.FindJournal(ctx, "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, j.ID, got.ID)
	assert.Equal(t, j.CreatedAt, got.CreatedAt)
	assert.True(t, got.Complete())
	assert.Equal(t, 1, s.CountJournal("2024-03-05"))
}

func TestListMoodsRangeAndOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	add := func(date domain.Date, details domain.SlotDetails) {
		require.NoError(t, s.InsertMood(ctx, &domain.MoodEntry{Date: date, Mood: domain.MoodGood, Details: details}))
	}
	add("2024-03-06", domain.EveningDetails{})
	add("2024-03-06", domain.MorningDetails{})
	add("2024-03-01", domain.MorningDetails{})
	add("2024-03-10", domain.MorningDetails{})

	got, err := s.ListMoods(ctx, "2024-03-01", "2024-03-06")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.MoodKey{Date: "2024-03-01", Slot: domain.SlotMorning}, got[0].Key())
	assert.Equal(t, domain.MoodKey{Date: "2024-03-06", Slot: domain.SlotMorning}, got[1].Key())
	assert.Equal(t, domain.MoodKey{Date: "2024-03-06", Slot: domain.SlotEvening}, got[2].Key())
}
