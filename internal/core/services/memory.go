package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
	"github.com/custodia-labs/memora-cli/internal/logger"
)

// Ensure MemoryService implements the interface.
var _ driving.MemoryService = (*MemoryService)(nil)

const defaultTopK = 10

// MemoryService stores documents and ranks them against queries.
// The ranking strategy is fixed when the service is constructed; a
// dense embedding failure during a single call downgrades that call
// to sparse scoring without changing the configured strategy.
type MemoryService struct {
	store    driven.MemoryStore
	embedder driven.EmbeddingService
	strategy domain.EmbeddingStrategy
}

// NewMemoryService creates a memory service using the given store and
// resolved strategy. embedder may be nil unless the strategy is dense.
func NewMemoryService(
	store driven.MemoryStore,
	embedder driven.EmbeddingService,
	strategy domain.EmbeddingStrategy,
) *MemoryService {
	if !strategy.IsValid() {
		strategy = domain.StrategySparse
	}
	if strategy == domain.StrategyDense && embedder == nil {
		logger.Warn("Dense strategy requested without an embedding service, using sparse")
		strategy = domain.StrategySparse
	}
	return &MemoryService{
		store:    store,
		embedder: embedder,
		strategy: strategy,
	}
}

// Strategy returns the strategy the service was constructed with.
func (s *MemoryService) Strategy() domain.EmbeddingStrategy {
	return s.strategy
}

// Add stores text as an immutable document together with its context
// handle. Adding the same content twice (under any ID), or reusing an
// existing document ID, is a no-op that returns the existing handle ID.
func (s *MemoryService) Add(ctx context.Context, documentID, text string, metadata map[string]any) (string, error) {
	if strings.TrimSpace(documentID) == "" {
		return "", fmt.Errorf("%w: document ID must not be blank", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: text must not be blank", domain.ErrInvalidInput)
	}

	textHash := domain.TextHash(text)

	handleID, found, err := s.existingHandle(ctx, documentID, textHash)
	if err != nil {
		return "", err
	}
	if found {
		logger.Debug("Document already stored, returning handle %s", handleID)
		return handleID, nil
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:            documentID,
		Text:          text,
		TextHash:      textHash,
		Metadata:      metadata,
		EmbeddingKind: domain.EmbeddingKindNone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if s.strategy == domain.StrategyDense && s.embedder != nil {
		vector, embedErr := s.embedder.Embed(ctx, text)
		if embedErr != nil {
			logger.Warn("Embedding failed for %s, storing without vector: %v", documentID, embedErr)
		} else {
			doc.EmbeddingKind = domain.EmbeddingKindDense
			doc.Embedding = vector
		}
	}

	handle := &domain.ContextHandle{
		ID:          uuid.New().String(),
		DocumentID:  documentID,
		ContextType: domain.ContextTypeDocument,
		Summary:     domain.Summarize(text),
		KeyPhrases:  domain.KeyPhrases(text),
		Importance:  domain.ImportanceScore(text),
		CreatedAt:   now,
	}

	if err := s.store.SaveDocumentWithHandle(ctx, doc, handle); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost an insert race. The winner's handle is authoritative.
			if winnerID, ok, lookupErr := s.existingHandle(ctx, documentID, textHash); lookupErr == nil && ok {
				return winnerID, nil
			}
			return documentID, nil
		}
		return "", fmt.Errorf("save document: %w", err)
	}

	logger.Debug("Stored document %s (handle=%s, embedding=%s)", documentID, handle.ID, doc.EmbeddingKind)
	return handle.ID, nil
}

// existingHandle looks for a document already stored under this content
// hash or ID and returns its handle ID. When a document exists but its
// handle cannot be found, the document ID itself is returned.
func (s *MemoryService) existingHandle(ctx context.Context, documentID, textHash string) (string, bool, error) {
	existing, err := s.store.GetDocumentByHash(ctx, textHash)
	if errors.Is(err, domain.ErrNotFound) {
		existing, err = s.store.GetDocument(ctx, documentID)
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
	}
	if err != nil {
		return "", false, fmt.Errorf("look up existing document: %w", err)
	}

	handle, err := s.store.GetHandleForDocument(ctx, existing.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return existing.ID, true, nil
		}
		return "", false, fmt.Errorf("look up existing handle: %w", err)
	}
	return handle.ID, true, nil
}

// Query ranks every stored document against the query text and returns
// the topK best matches, strongest first. Equal scores keep the stored
// order, which is most recent first.
func (s *MemoryService) Query(ctx context.Context, text string, topK int) ([]domain.QueryMatch, error) {
	logger.Debug("Query: %q (top_k=%d, strategy=%s)", text, topK, s.strategy)

	if strings.TrimSpace(text) == "" {
		return []domain.QueryMatch{}, nil
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return []domain.QueryMatch{}, nil
	}

	matches := s.rank(ctx, text, docs)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// rank scores documents under the active strategy. When the query
// cannot be embedded the call falls through to sparse scoring.
func (s *MemoryService) rank(ctx context.Context, query string, docs []domain.Document) []domain.QueryMatch {
	switch s.strategy {
	case domain.StrategyDense:
		queryVector, err := s.embedQuery(ctx, query)
		if err != nil {
			logger.Warn("Query embedding failed, falling back to sparse scoring: %v", err)
			return rankSparse(query, docs)
		}
		return rankDense(queryVector, docs)
	case domain.StrategySparse:
		return rankSparse(query, docs)
	case domain.StrategyLexical:
		return rankLexical(query, docs)
	default:
		return rankLexical(query, docs)
	}
}

func (s *MemoryService) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	return s.embedder.Embed(ctx, query)
}

// rankDense scores documents that carry a stored dense vector.
// Documents stored without one do not participate in dense ranking.
func rankDense(queryVector []float32, docs []domain.Document) []domain.QueryMatch {
	matches := make([]domain.QueryMatch, 0, len(docs))
	for i := range docs {
		if docs[i].EmbeddingKind != domain.EmbeddingKindDense || len(docs[i].Embedding) == 0 {
			continue
		}
		matches = append(matches, domain.QueryMatch{
			DocumentID: docs[i].ID,
			Score:      cosineSimilarity32(queryVector, docs[i].Embedding),
			Metadata:   docs[i].Metadata,
		})
	}
	return matches
}

// cosineSimilarity32 computes cosine similarity over float32 vectors
// with float64 accumulation. Mismatched or zero vectors score 0.
func cosineSimilarity32(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// DocumentByHandle resolves a context handle to its full document.
func (s *MemoryService) DocumentByHandle(ctx context.Context, handleID string) (*domain.ExpandedDocument, error) {
	if strings.TrimSpace(handleID) == "" {
		return nil, fmt.Errorf("%w: handle ID must not be blank", domain.ErrInvalidInput)
	}
	expanded, err := s.store.GetDocumentByHandle(ctx, handleID)
	if err != nil {
		return nil, fmt.Errorf("expand handle %s: %w", handleID, err)
	}
	return expanded, nil
}

// Stats reports store counts alongside the active strategy and which
// strategies the current configuration can serve.
func (s *MemoryService) Stats(ctx context.Context) (*domain.MemoryStats, error) {
	totalDocs, err := s.store.CountDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	totalHandles, err := s.store.CountHandles(ctx)
	if err != nil {
		return nil, fmt.Errorf("count handles: %w", err)
	}
	kinds, err := s.store.CountEmbeddingKinds(ctx)
	if err != nil {
		return nil, fmt.Errorf("count embedding kinds: %w", err)
	}

	return &domain.MemoryStats{
		TotalDocuments: totalDocs,
		TotalHandles:   totalHandles,
		EmbeddingKinds: kinds,
		Strategy:       s.strategy,
		Availability: domain.StrategyAvailability{
			Dense:   s.embedder != nil,
			Sparse:  true,
			Lexical: true,
		},
		StorageLocation: s.store.Location(),
	}, nil
}
