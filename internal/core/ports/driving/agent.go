package driving

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// AgentMemoryService is the integration facade agents call directly.
// It wraps MemoryService with deterministic document-ID synthesis and
// source tagging so repeated identical interactions deduplicate naturally.
type AgentMemoryService interface {
	// StoreInteraction stores an agent interaction. The document ID is
	// synthesised from source, interaction type and a short content hash.
	StoreInteraction(ctx context.Context, source, interactionType, content string, metadata map[string]any) (string, error)

	// StoreArtifact stores a project artifact under a synthesised ID.
	StoreArtifact(ctx context.Context, name, artifactType, content string, metadata map[string]any) (string, error)

	// FindSimilarInteractions ranks stored interactions against a query.
	// Results from other source categories are filtered out after an
	// over-fetched query.
	FindSimilarInteractions(ctx context.Context, query string, topK int) ([]domain.QueryMatch, error)

	// FindSimilarArtifacts ranks stored artifacts against a query.
	FindSimilarArtifacts(ctx context.Context, query string, topK int) ([]domain.QueryMatch, error)

	// ContextForAgent merges ranked interactions and artifacts for an
	// agent's objective into bounded context entries, best first. Entries
	// reference handles; full text is only available via expansion.
	ContextForAgent(ctx context.Context, agentName, objective string, topK int) ([]domain.ContextEntry, error)
}
