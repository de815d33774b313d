package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/farum-calm/internal/domain"
)

const DefaultModel = "gemini-2.5-flash"

type VertexConfig struct {
	Project  string
	Location string
	Model    string
}

type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates a domain.ChatClient backed by Vertex AI (Gemini).
func NewVertexClient(ctx context.Context, cfg VertexConfig) (*VertexClient, error) {
	if cfg.Project == "" || cfg.Location == "" {
		return nil, errors.New("vertex client needs a GCP project and location")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.Project,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: cfg.Model,
	}, nil
}

// Reply implements domain.ChatClient using Vertex AI.
func (v *VertexClient) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	contents := Contents(history)
	if len(contents) == 0 {
		return "", errors.New("no user message to answer")
	}

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(), genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   2048,
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", errors.New("vertex returned empty text")
	}
	return text, nil
}

// Contents converts chat history into Gemini turns. Leading assistant
// messages such as the greeting are dropped, since a conversation sent to
// the model has to open with a user turn.
func Contents(history []domain.ChatMessage) []*genai.Content {
	var contents []*genai.Content
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == domain.ChatRoleAssistant {
			if len(contents) == 0 {
				continue
			}
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}
