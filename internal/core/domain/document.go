package domain

import "time"

// Document represents an immutable unit of stored text.
// Content never changes after insert; storing new content means adding a
// new document under a new ID. Deduplication happens on TextHash, so the
// same text added under two IDs yields a single stored document.
type Document struct {
	// ID is the caller-supplied logical identifier.
	ID string

	// Text is the full original text content.
	Text string

	// TextHash is the SHA-256 hex fingerprint of Text.
	// At most one document exists per distinct hash.
	TextHash string

	// Metadata contains arbitrary JSON-serialisable key-value pairs.
	// Opaque to the store; used only for caller-side filtering.
	Metadata map[string]any

	// EmbeddingKind records which embedding the document carries.
	// Documents stored while the dense provider was unavailable keep
	// EmbeddingKindNone and are scored by fallback strategies only.
	EmbeddingKind EmbeddingKind

	// Embedding is the dense vector when EmbeddingKind is dense, nil otherwise.
	Embedding []float32

	// CreatedAt is when the document was stored.
	CreatedAt time.Time

	// UpdatedAt mirrors CreatedAt; kept in the schema although content is
	// immutable after insert.
	UpdatedAt time.Time
}

// ExpandedDocument pairs a document with its context handle.
// It is the result of expanding a handle back to full content and the only
// representation that exposes the stored text alongside handle fields.
type ExpandedDocument struct {
	// Document is the full stored document.
	Document Document

	// Handle is the bounded reference that resolved to the document.
	Handle ContextHandle
}
