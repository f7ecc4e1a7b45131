package driven

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// Source fetches content items for bulk ingestion.
// Sources are fetch-only: no cursors, no incremental sync, no background
// work. Every ingest walks the source from the top and relies on content
// hashing for idempotence.
type Source interface {
	// Type returns the source type identifier.
	Type() domain.SourceType

	// SourceID returns the configured source ID.
	SourceID() string

	// Validate checks the source is properly configured and reachable.
	// For API sources this makes a lightweight test call; for filesystem
	// it checks the root path exists and is readable.
	Validate(ctx context.Context) error

	// Fetch streams all items from the source. Both channels close when
	// fetching finishes; a send on the error channel ends the stream.
	Fetch(ctx context.Context) (<-chan domain.SourceItem, <-chan error)

	// Close releases resources.
	Close() error
}

// SourceResolver turns a stored source configuration into a live Source.
// Each source type registers one resolver.
type SourceResolver interface {
	// Type returns the source type this resolver handles.
	Type() domain.SourceType

	// Resolve builds a Source from its stored configuration.
	// Returns domain.ErrSourceValidation when the config is malformed.
	Resolve(ctx context.Context, source domain.Source) (Source, error)
}

// SourceRegistry resolves stored sources by their type.
type SourceRegistry interface {
	// Resolve builds a live Source for the given configuration.
	// Returns domain.ErrUnsupportedType for unregistered types.
	Resolve(ctx context.Context, source domain.Source) (Source, error)

	// Register adds a resolver. Later registrations win on type collision.
	Register(resolver SourceResolver)

	// SupportedTypes returns all registered source types.
	SupportedTypes() []domain.SourceType
}
