package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// Ensure MemoryStore implements the interface.
var _ driven.MemoryStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of driven.MemoryStore for testing.
// It mirrors the SQLite store's semantics: insert-only, duplicate IDs and
// text hashes rejected, enumeration most recently inserted first.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	handles   map[string]domain.ContextHandle
	byHash    map[string]string // text hash -> document ID
	byDoc     map[string]string // document ID -> handle ID
	order     []string          // document IDs in insertion order
}

// NewMemoryStore creates a new in-memory memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]domain.Document),
		handles:   make(map[string]domain.ContextHandle),
		byHash:    make(map[string]string),
		byDoc:     make(map[string]string),
	}
}

// SaveDocumentWithHandle stores a document and its handle atomically.
func (s *MemoryStore) SaveDocumentWithHandle(
	_ context.Context, doc *domain.Document, handle *domain.ContextHandle,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[doc.ID]; ok {
		return domain.ErrAlreadyExists
	}
	if _, ok := s.byHash[doc.TextHash]; ok {
		return domain.ErrAlreadyExists
	}

	s.documents[doc.ID] = *doc
	s.handles[handle.ID] = *handle
	s.byHash[doc.TextHash] = doc.ID
	s.byDoc[doc.ID] = handle.ID
	s.order = append(s.order, doc.ID)
	return nil
}

// GetDocument retrieves a document by ID.
func (s *MemoryStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetDocumentByHash retrieves a document by content hash.
func (s *MemoryStore) GetDocumentByHash(_ context.Context, textHash string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byHash[textHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := s.documents[id]
	return &doc, nil
}

// GetDocumentByHandle joins a handle to its document.
func (s *MemoryStore) GetDocumentByHandle(_ context.Context, handleID string) (*domain.ExpandedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	handle, ok := s.handles[handleID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc, ok := s.documents[handle.DocumentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.ExpandedDocument{Document: doc, Handle: handle}, nil
}

// GetHandleForDocument returns the handle owned by a document.
func (s *MemoryStore) GetHandleForDocument(_ context.Context, documentID string) (*domain.ContextHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	handleID, ok := s.byDoc[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	handle := s.handles[handleID]
	return &handle, nil
}

// ListDocuments returns all documents, most recently inserted first.
func (s *MemoryStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Document, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		result = append(result, s.documents[s.order[i]])
	}
	// Reverse insertion order already breaks timestamp ties
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListHandles returns handles matching the filter, most important first.
func (s *MemoryStore) ListHandles(_ context.Context, filter domain.HandleFilter) ([]domain.ContextHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.ContextHandle
	for _, handle := range s.handles {
		if filter.ContextType != "" && handle.ContextType != filter.ContextType {
			continue
		}
		if handle.Importance < filter.MinImportance {
			continue
		}
		result = append(result, handle)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Importance != result[j].Importance {
			return result[i].Importance > result[j].Importance
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// CountDocuments returns the stored document count.
func (s *MemoryStore) CountDocuments(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

// CountHandles returns the stored handle count.
func (s *MemoryStore) CountHandles(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handles), nil
}

// CountEmbeddingKinds returns the distribution of stored embedding kinds.
func (s *MemoryStore) CountEmbeddingKinds(_ context.Context) (map[domain.EmbeddingKind]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kinds := make(map[domain.EmbeddingKind]int)
	for _, doc := range s.documents {
		kinds[doc.EmbeddingKind]++
	}
	return kinds, nil
}

// Location identifies the store as non-persistent.
func (s *MemoryStore) Location() string {
	return ":memory:"
}
