package domain

import "time"

// ContextType classifies a context handle.
type ContextType string

const (
	// ContextTypeDocument is the classification applied to every handle
	// created by Add. Other values are representable for future use.
	ContextTypeDocument ContextType = "document"
)

// String returns the string representation.
func (t ContextType) String() string {
	return string(t)
}

// ContextHandle is a bounded, opaque reference to a stored document.
// A handle carries a summary and key phrases but never the full text;
// callers decide relevance from the handle alone and pay the cost of
// retrieving full content only when they expand it.
type ContextHandle struct {
	// ID is the opaque handle identifier, generated at insert time.
	// It is independent of the document ID and safe to pass between agents.
	ID string

	// DocumentID is a weak back-reference to the owning document.
	DocumentID string

	// ContextType classifies the handle.
	ContextType ContextType

	// Summary is a bounded-length excerpt of the document text.
	Summary string

	// KeyPhrases holds extracted terms and bigrams, capped at
	// MaxKeyPhrases entries.
	KeyPhrases []string

	// Importance is a score in [0,1] derived from content length.
	Importance float64

	// CreatedAt is when the handle was created.
	CreatedAt time.Time
}

// HandleFilter narrows a handle listing.
type HandleFilter struct {
	// ContextType filters by classification; empty matches all.
	ContextType ContextType

	// MinImportance is the inclusive lower bound on importance.
	// Zero admits every handle.
	MinImportance float64
}
