package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/PabloGalante/farum-calm/internal/adapters/llm"
	"github.com/PabloGalante/farum-calm/internal/config"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

func TestMockReplyEchoesLastUserMessage(t *testing.T) {
	got, err := llm.NewMockLLM().Reply(context.Background(), []domain.ChatMessage{
		{Role: domain.ChatRoleUser, Content: "first"},
		{Role: domain.ChatRoleAssistant, Content: "answer"},
		{Role: domain.ChatRoleUser, Content: "second"},
	})
	require.NoError(t, err)
	assert.Contains(t, got, `"second"`)
}

func TestContentsDropsLeadingGreeting(t *testing.T) {
	contents := llm.Contents([]domain.ChatMessage{
		{Role: domain.ChatRoleAssistant, Content: "hi there"},
		{Role: domain.ChatRoleUser, Content: "hello"},
		{Role: domain.ChatRoleAssistant, Content: "how are you"},
		{Role: domain.ChatRoleUser, Content: "tired"},
	})

	require.Len(t, contents, 3)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "tired", contents[2].Parts[0].Text)
}

func TestNewVertexClientRequiresProject(t *testing.T) {
	_, err := llm.NewVertexClient(context.Background(), llm.VertexConfig{Location: "us-central1"})
	assert.Error(t, err)
}

func TestNewClientUsesMock(t *testing.T) {
	c, err := llm.NewClient(context.Background(), &config.Config{UseMockLLM: true})
	require.NoError(t, err)
	assert.IsType(t, &llm.MockLLM{}, c)
}
