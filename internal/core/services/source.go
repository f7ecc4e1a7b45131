package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages ingestion source configurations. Removing a
// source only removes its configuration; documents already ingested
// from it are immutable and stay in memory.
type SourceService struct {
	sourceStore driven.SourceStore
	registry    driven.SourceRegistry
}

// NewSourceService creates a new source service.
func NewSourceService(sourceStore driven.SourceStore, registry driven.SourceRegistry) *SourceService {
	return &SourceService{
		sourceStore: sourceStore,
		registry:    registry,
	}
}

// Add creates a new source configuration.
func (s *SourceService) Add(ctx context.Context, source domain.Source) error {
	if strings.TrimSpace(source.ID) == "" {
		return fmt.Errorf("%w: source ID must not be blank", domain.ErrInvalidInput)
	}
	if !source.Type.IsValid() {
		return fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidInput, source.Type)
	}
	if err := s.ValidateConfig(ctx, source.Type, source.Config); err != nil {
		return err
	}

	existing, err := s.sourceStore.Get(ctx, source.ID)
	if err == nil && existing != nil {
		return fmt.Errorf("source %s: %w", source.ID, domain.ErrAlreadyExists)
	}

	now := time.Now().UTC()
	source.CreatedAt = now
	source.UpdatedAt = now

	return s.sourceStore.Save(ctx, source)
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	return s.sourceStore.Get(ctx, id)
}

// List returns all configured sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sourceStore.List(ctx)
}

// Remove deletes a source configuration. Ingested documents remain.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	return s.sourceStore.Delete(ctx, id)
}

// ValidateConfig checks type-specific configuration by resolving the
// source through its registered resolver.
func (s *SourceService) ValidateConfig(ctx context.Context, sourceType domain.SourceType, config map[string]any) error {
	if s.registry == nil {
		return errors.New("source registry not configured")
	}

	probe := domain.Source{
		ID:     "validate",
		Name:   "validate",
		Type:   sourceType,
		Config: config,
	}
	src, err := s.registry.Resolve(ctx, probe)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceValidation, err)
	}
	defer src.Close()

	if err := src.Validate(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceValidation, err)
	}
	return nil
}
