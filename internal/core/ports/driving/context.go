package driving

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// ContextService exposes bounded handle records and their expansion.
// Handles let callers reason about relevance without holding full
// documents; only Expand pays the cost of retrieving stored text.
type ContextService interface {
	// Handles lists handle records matching the filter, sorted by
	// importance descending then creation time descending. Records carry
	// summaries and key phrases, never full text.
	Handles(ctx context.Context, filter domain.HandleFilter) ([]domain.ContextHandle, error)

	// Expand resolves a handle to the full stored document.
	// Returns domain.ErrNotFound for unknown handles.
	Expand(ctx context.Context, handleID string) (*domain.ExpandedDocument, error)
}
