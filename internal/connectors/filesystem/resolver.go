package filesystem

import (
	"context"
	"fmt"

	"github.com/custodia-labs/memora-cli/internal/connectors"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.SourceResolver = (*Resolver)(nil)

// Resolver builds filesystem connectors from stored configuration.
//
// Config keys:
//   - path (required): directory to ingest
//   - include: glob patterns relative to path, default **/*
//   - exclude: glob patterns relative to path
type Resolver struct{}

// NewResolver creates a filesystem resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Type returns the source type this resolver handles.
func (r *Resolver) Type() domain.SourceType {
	return domain.SourceTypeFilesystem
}

// Resolve builds a connector from the source configuration.
func (r *Resolver) Resolve(_ context.Context, source domain.Source) (driven.Source, error) {
	path := connectors.StringValue(source.Config, "path")
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrSourceValidation)
	}

	return New(
		source.ID,
		path,
		WithIncludes(connectors.StringSliceValue(source.Config, "include")),
		WithExcludes(connectors.StringSliceValue(source.Config, "exclude")),
	), nil
}
