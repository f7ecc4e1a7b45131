package driving

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// MemoryService stores documents and answers similarity queries.
type MemoryService interface {
	// Add stores text under the given document ID and returns the handle
	// ID of its context handle. Blank text fails with
	// domain.ErrInvalidInput. Adding content whose hash (or ID) already
	// exists is idempotent: nothing is written and the pre-existing
	// handle ID is returned. Embedding failures are absorbed; the
	// document is stored without a vector.
	Add(ctx context.Context, documentID, text string, metadata map[string]any) (string, error)

	// Query ranks all stored documents against free text and returns at
	// most topK matches, best first. A blank query or an empty corpus
	// yields an empty slice, never an error. Equal scores order by
	// insertion recency descending.
	Query(ctx context.Context, text string, topK int) ([]domain.QueryMatch, error)

	// DocumentByHandle expands a handle to the full stored document.
	// Returns domain.ErrNotFound for unknown handles.
	DocumentByHandle(ctx context.Context, handleID string) (*domain.ExpandedDocument, error)

	// Stats reports live corpus counts, the embedding-kind distribution,
	// strategy availability, and the storage location.
	Stats(ctx context.Context) (*domain.MemoryStats, error)
}
