package driven

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// SourceStore persists the sources registered for ingestion. Stored
// documents do not reference sources; removing one stops future syncs
// but leaves already-ingested memory intact.
type SourceStore interface {
	// Save upserts a source keyed by its ID.
	Save(ctx context.Context, source domain.Source) error

	// Get returns the source with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// Delete removes the source with the given ID. Missing IDs are
	// not an error.
	Delete(ctx context.Context, id string) error

	// List returns all registered sources ordered by registration time.
	List(ctx context.Context) ([]domain.Source, error)
}
