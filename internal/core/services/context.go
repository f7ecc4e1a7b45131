package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

// Ensure ContextService implements the interface.
var _ driving.ContextService = (*ContextService)(nil)

// ContextService serves bounded handle records so callers can survey
// stored memory without loading full document text.
type ContextService struct {
	store driven.MemoryStore
}

// NewContextService creates a context service backed by the given store.
func NewContextService(store driven.MemoryStore) *ContextService {
	return &ContextService{store: store}
}

// Handles lists context handles matching the filter, ordered by
// importance descending then creation time descending.
func (s *ContextService) Handles(ctx context.Context, filter domain.HandleFilter) ([]domain.ContextHandle, error) {
	if filter.MinImportance < 0 || filter.MinImportance > 1 {
		return nil, fmt.Errorf("%w: minimum importance must be within [0, 1]", domain.ErrInvalidInput)
	}

	handles, err := s.store.ListHandles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list handles: %w", err)
	}
	return handles, nil
}

// Expand resolves a handle to the full document it points at.
func (s *ContextService) Expand(ctx context.Context, handleID string) (*domain.ExpandedDocument, error) {
	if strings.TrimSpace(handleID) == "" {
		return nil, fmt.Errorf("%w: handle ID must not be blank", domain.ErrInvalidInput)
	}
	expanded, err := s.store.GetDocumentByHandle(ctx, handleID)
	if err != nil {
		return nil, fmt.Errorf("expand handle %s: %w", handleID, err)
	}
	return expanded, nil
}
