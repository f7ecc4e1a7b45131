package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry routes items to normalisers by MIME type.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[string]driven.Normaliser
}

// NewRegistry creates a registry with the given normalisers registered.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{
		normalisers: make(map[string]driven.Normaliser),
	}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser for each of its supported MIME types.
// Later registrations win on collision.
func (r *Registry) Register(normaliser driven.Normaliser) {
	if normaliser == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mimeType := range normaliser.SupportedMIMETypes() {
		r.normalisers[mimeType] = normaliser
	}
}

// Normalise converts an item using the normaliser registered for its
// MIME type. Returns domain.ErrUnsupportedType when none matches.
func (r *Registry) Normalise(ctx context.Context, item *domain.SourceItem) (*driven.NormaliseResult, error) {
	if item == nil {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	normaliser, ok := r.normalisers[item.MIMEType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("mime type %q: %w", item.MIMEType, domain.ErrUnsupportedType)
	}

	return normaliser.Normalise(ctx, item)
}

// SupportedMIMETypes returns all registered MIME types, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.normalisers))
	for mimeType := range r.normalisers {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}
