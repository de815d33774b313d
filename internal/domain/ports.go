package domain

import "context"

// ChatRole is the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the companion chat, as sent to the remote endpoint.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatClient defines how the application talks to the remote conversational
// endpoint. History is already truncated by the caller.
type ChatClient interface {
	Reply(ctx context.Context, history []ChatMessage) (string, error)
}

// MoodBackend persists mood_entries rows. Find returns ErrNotFound when no
// row exists for the key. Insert assigns ID and CreatedAt.
type MoodBackend interface {
	FindMood(ctx context.Context, key MoodKey) (*MoodEntry, error)
	InsertMood(ctx context.Context, entry *MoodEntry) error
	UpdateMood(ctx context.Context, id RecordID, entry *MoodEntry) error
	ListMoods(ctx context.Context, from, to Date) ([]*MoodEntry, error)
}

// JournalBackend persists journal_entries rows, same contract as MoodBackend.
type JournalBackend interface {
	FindJournal(ctx context.Context, date Date) (*JournalEntry, error)
	InsertJournal(ctx context.Context, entry *JournalEntry) error
	UpdateJournal(ctx context.Context, id RecordID, entry *JournalEntry) error
}

// RecordBackend is one storage implementation serving both tables.
type RecordBackend interface {
	MoodBackend
	JournalBackend
}
