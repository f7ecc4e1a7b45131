package driven

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// MemoryStore persists documents and their context handles.
// Backed by SQLite. Documents and handles are immutable once written; the
// store exposes no update or delete operations.
type MemoryStore interface {
	// SaveDocumentWithHandle stores a document and its handle in one
	// transaction. Returns domain.ErrAlreadyExists when another document
	// with the same ID or text hash is already stored; callers convert
	// that into a read of the existing handle.
	SaveDocumentWithHandle(ctx context.Context, doc *domain.Document, handle *domain.ContextHandle) error

	// GetDocument retrieves a document by its caller-supplied ID.
	// Returns domain.ErrNotFound when absent.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByHash retrieves a document by content hash.
	// Returns domain.ErrNotFound when absent.
	GetDocumentByHash(ctx context.Context, textHash string) (*domain.Document, error)

	// GetDocumentByHandle joins a handle to its document.
	// Returns domain.ErrNotFound when the handle is unknown.
	GetDocumentByHandle(ctx context.Context, handleID string) (*domain.ExpandedDocument, error)

	// GetHandleForDocument returns the handle owned by a document.
	// Returns domain.ErrNotFound when the document has no handle.
	GetHandleForDocument(ctx context.Context, documentID string) (*domain.ContextHandle, error)

	// ListDocuments returns all documents, most recently inserted first.
	// Ranking relies on this enumeration order for its tie-break.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// ListHandles returns handles matching the filter, sorted by
	// importance descending then creation time descending.
	ListHandles(ctx context.Context, filter domain.HandleFilter) ([]domain.ContextHandle, error)

	// CountDocuments returns the live document count.
	CountDocuments(ctx context.Context) (int, error)

	// CountHandles returns the live handle count.
	CountHandles(ctx context.Context) (int, error)

	// CountEmbeddingKinds returns the distribution of stored embedding kinds.
	CountEmbeddingKinds(ctx context.Context) (map[domain.EmbeddingKind]int, error)

	// Location returns a human-readable description of where data lives.
	Location() string
}
