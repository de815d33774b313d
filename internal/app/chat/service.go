// Package chat proxies the companion conversation to the remote endpoint.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/PabloGalante/farum-calm/internal/domain"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

// MaxContextMessages is how many of the most recent messages are sent with
// every request.
const MaxContextMessages = 10

// FallbackMessage replaces the answer when the remote endpoint fails.
const FallbackMessage = "Sorry, something went wrong... Try again in a minute."

var ErrEmptyConversation = errors.New("conversation has no messages")

type Service struct {
	client domain.ChatClient
}

func NewService(client domain.ChatClient) *Service {
	return &Service{client: client}
}

// Recent returns the last MaxContextMessages messages of history.
func Recent(history []domain.ChatMessage) []domain.ChatMessage {
	if len(history) <= MaxContextMessages {
		return history
	}
	return history[len(history)-MaxContextMessages:]
}

// Reply asks the remote endpoint for the next assistant message. When the
// endpoint fails the answer is FallbackMessage and err wraps
// domain.ErrRemoteService, so the conversation can always continue.
func (s *Service) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyConversation
	}

	window := Recent(history)
	log := observability.LoggerFromContext(ctx).With(
		"history_len", len(history),
		"sent_len", len(window),
	)

	answer, err := s.client.Reply(ctx, window)
	if err == nil && answer == "" {
		err = errors.New("empty answer")
	}
	if err != nil {
		log.Error("chat endpoint failed, using fallback", "error", err)
		return FallbackMessage, fmt.Errorf("%w: %w", domain.ErrRemoteService, err)
	}

	log.Info("chat reply generated")
	return answer, nil
}
