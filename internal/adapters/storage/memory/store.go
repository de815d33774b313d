package memory

// Store serves both record tables from memory and satisfies
// domain.RecordBackend.
type Store struct {
	*MoodStore
	*JournalStore
}

func NewStore() *Store {
	return &Store{
		MoodStore:    NewMoodStore(),
		JournalStore: NewJournalStore(),
	}
}
