package driving

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// SourceService manages ingestion source configurations.
type SourceService interface {
	// Add creates a new source configuration.
	Add(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Remove deletes a source configuration. Documents already ingested
	// from it remain stored.
	Remove(ctx context.Context, id string) error

	// ValidateConfig checks type-specific configuration for completeness.
	ValidateConfig(ctx context.Context, sourceType domain.SourceType, config map[string]any) error
}
