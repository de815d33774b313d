package llm

import (
	"context"

	"github.com/PabloGalante/farum-calm/internal/config"
	"github.com/PabloGalante/farum-calm/internal/domain"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

// NewClient picks the mock or the Vertex client from the configuration.
func NewClient(ctx context.Context, cfg *config.Config) (domain.ChatClient, error) {
	log := observability.LoggerFromContext(ctx)

	if cfg.UseMockLLM {
		log.Info("using mock LLM client")
		return NewMockLLM(), nil
	}

	log.Info("using Vertex LLM client", "project", cfg.GCPProjectID, "location", cfg.GCPLocation, "model", cfg.ModelName)
	return NewVertexClient(ctx, VertexConfig{
		Project:  cfg.GCPProjectID,
		Location: cfg.GCPLocation,
		Model:    cfg.ModelName,
	})
}
