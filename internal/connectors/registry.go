package connectors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.SourceRegistry = (*Registry)(nil)

// Registry maps source types to their resolvers.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[domain.SourceType]driven.SourceResolver
}

// NewRegistry creates a registry holding the given resolvers.
func NewRegistry(resolvers ...driven.SourceResolver) *Registry {
	r := &Registry{
		resolvers: make(map[domain.SourceType]driven.SourceResolver, len(resolvers)),
	}
	for _, resolver := range resolvers {
		r.Register(resolver)
	}
	return r
}

// Register adds a resolver. Later registrations win on type collision.
func (r *Registry) Register(resolver driven.SourceResolver) {
	if resolver == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers[resolver.Type()] = resolver
}

// Resolve builds a live Source for the given configuration.
func (r *Registry) Resolve(ctx context.Context, source domain.Source) (driven.Source, error) {
	r.mu.RLock()
	resolver, ok := r.resolvers[source.Type]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("source type %q: %w", source.Type, domain.ErrUnsupportedType)
	}
	return resolver.Resolve(ctx, source)
}

// SupportedTypes returns all registered source types, sorted.
func (r *Registry) SupportedTypes() []domain.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.SourceType, 0, len(r.resolvers))
	for t := range r.resolvers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
