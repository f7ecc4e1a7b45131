// Package ai resolves the query strategy and embedding provider at startup.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/memora-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/memora-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of strategy resolution.
type InitResult struct {
	EmbeddingService driven.EmbeddingService  // nil unless Strategy is dense
	Strategy         domain.EmbeddingStrategy // the strategy queries will use
	Warnings         []string                 // Non-fatal issues that caused fallback.
	FellBack         bool                     // True if a requested provider was unreachable.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
}

// ResolveStrategy resolves the query strategy exactly once at startup.
// Auto and dense modes create the configured embedding provider and ping
// it; an unreachable or unconfigured provider degrades the result to
// sparse. Sparse and lexical modes never touch the network. Queries never
// re-probe: the resolved strategy holds for the process lifetime.
func ResolveStrategy(mode domain.StrategyMode, settings *domain.EmbeddingSettings) *InitResult {
	switch mode {
	case domain.StrategyModeSparse:
		return &InitResult{Strategy: domain.StrategySparse}
	case domain.StrategyModeLexical:
		return &InitResult{Strategy: domain.StrategyLexical}
	}

	// Auto and dense modes want a provider.
	result := &InitResult{Strategy: domain.StrategySparse}

	if settings == nil || !settings.IsConfigured() {
		if mode == domain.StrategyModeDense {
			result.Warnings = append(result.Warnings,
				"dense strategy requested but no embedding provider is configured; using sparse scoring. Run 'memora settings wizard' to configure one")
			result.FellBack = true
		}
		return result
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("embedding provider misconfigured (%v); using sparse scoring", err))
		result.FellBack = true
		return result
	}
	if svc == nil {
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("embedding provider unreachable (%v); using sparse scoring", err))
		result.FellBack = true
		return result
	}

	result.EmbeddingService = svc
	result.Strategy = domain.StrategyDense
	return result
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
// This is intended for use in the settings wizard to validate credentials on configuration.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	dimensions := domain.EmbeddingDimensions()[settings.Model]

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}
