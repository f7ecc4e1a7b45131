package driven

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// Normaliser converts a fetched item into clean text for storage.
// Each normaliser handles specific MIME types.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise extracts clean text from an item.
	Normalise(ctx context.Context, item *domain.SourceItem) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Text is the cleaned text content.
	Text string

	// Title is a display title, falling back to the item title.
	Title string
}

// NormaliserRegistry selects the appropriate normaliser for an item.
type NormaliserRegistry interface {
	// Normalise converts an item using the best matching normaliser.
	// Returns domain.ErrUnsupportedType when no normaliser accepts the
	// item's MIME type.
	Normalise(ctx context.Context, item *domain.SourceItem) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
