package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

// MockLLM answers without any network call. Used in local mode and tests.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Reply(_ context.Context, history []domain.ChatMessage) (string, error) {
	last := lastUserMessage(history)
	if last == "" {
		return "I'm here with you. What would you like to talk about?", nil
	}
	return fmt.Sprintf("I hear you. You said %q. Tell me a little more about how that makes you feel.", last), nil
}

func lastUserMessage(history []domain.ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.ChatRoleUser {
			return history[i].Content
		}
	}
	return ""
}
