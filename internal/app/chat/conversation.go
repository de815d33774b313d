package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/PabloGalante/farum-calm/internal/app/greeting"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a reply is already pending")
)

// Conversation keeps the client-side history of one chat, starting with
// the time-of-day greeting. Only one message can be in flight at a time.
type Conversation struct {
	svc *Service

	mu       sync.Mutex
	messages []domain.ChatMessage
	pending  bool
}

func NewConversation(svc *Service, now time.Time) *Conversation {
	return &Conversation{
		svc: svc,
		messages: []domain.ChatMessage{
			{Role: domain.ChatRoleAssistant, Content: greeting.ForChat(now)},
		},
	}
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Send appends text as a user message and then the assistant's answer.
// On a remote failure the fallback answer is still appended and the
// returned error wraps domain.ErrRemoteService.
func (c *Conversation) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return domain.ChatMessage{}, ErrBusy
	}
	c.pending = true
	c.messages = append(c.messages, domain.ChatMessage{Role: domain.ChatRoleUser, Content: text})
	history := make([]domain.ChatMessage, len(c.messages))
	copy(history, c.messages)
	c.mu.Unlock()

	answer, err := c.svc.Reply(ctx, history)
	reply := domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: answer}

	c.mu.Lock()
	c.messages = append(c.messages, reply)
	c.pending = false
	c.mu.Unlock()

	return reply, err
}
