package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
	"github.com/custodia-labs/memora-cli/internal/logger"
)

// Ensure AgentMemoryService implements the interface.
var _ driving.AgentMemoryService = (*AgentMemoryService)(nil)

// Metadata tags written by the agent facade and used to separate the
// two categories at query time.
const (
	sourceTagKey         = "source"
	sourceTagInteraction = "agent_interaction"
	sourceTagArtifact    = "project_artifact"
)

// AgentMemoryService adapts the memory service for agent callers. It
// synthesises content-addressed document IDs so repeated stores of the
// same content deduplicate naturally, and tags everything it writes so
// interactions and artifacts can be queried separately.
type AgentMemoryService struct {
	memory driving.MemoryService
	store  driven.MemoryStore
}

// NewAgentMemoryService creates the agent facade over an existing
// memory service and its store.
func NewAgentMemoryService(memory driving.MemoryService, store driven.MemoryStore) *AgentMemoryService {
	return &AgentMemoryService{
		memory: memory,
		store:  store,
	}
}

// StoreInteraction records one agent interaction and returns its
// context handle ID.
func (s *AgentMemoryService) StoreInteraction(
	ctx context.Context,
	source, interactionType, content string,
	metadata map[string]any,
) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", fmt.Errorf("%w: interaction source must not be blank", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(interactionType) == "" {
		return "", fmt.Errorf("%w: interaction type must not be blank", domain.ErrInvalidInput)
	}

	documentID := fmt.Sprintf("%s_%s_%s", source, interactionType, domain.ShortHash(content))
	meta := cloneMetadata(metadata)
	meta[sourceTagKey] = sourceTagInteraction
	meta["interaction_source"] = source
	meta["interaction_type"] = interactionType

	return s.memory.Add(ctx, documentID, content, meta)
}

// StoreArtifact records one project artifact and returns its context
// handle ID.
func (s *AgentMemoryService) StoreArtifact(
	ctx context.Context,
	name, artifactType, content string,
	metadata map[string]any,
) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: artifact name must not be blank", domain.ErrInvalidInput)
	}

	documentID := fmt.Sprintf("artifact_%s_%s", name, domain.ShortHash(content))
	meta := cloneMetadata(metadata)
	meta[sourceTagKey] = sourceTagArtifact
	meta["artifact_name"] = name
	meta["artifact_type"] = artifactType

	return s.memory.Add(ctx, documentID, content, meta)
}

// FindSimilarInteractions ranks stored interactions against the query.
func (s *AgentMemoryService) FindSimilarInteractions(ctx context.Context, query string, topK int) ([]domain.QueryMatch, error) {
	return s.findTagged(ctx, query, topK, sourceTagInteraction)
}

// FindSimilarArtifacts ranks stored artifacts against the query.
func (s *AgentMemoryService) FindSimilarArtifacts(ctx context.Context, query string, topK int) ([]domain.QueryMatch, error) {
	return s.findTagged(ctx, query, topK, sourceTagArtifact)
}

// findTagged over-fetches from the shared document pool, keeps matches
// carrying the wanted source tag and truncates back to topK. Over-
// fetching by 2x compensates for untagged documents in the pool.
func (s *AgentMemoryService) findTagged(ctx context.Context, query string, topK int, tag string) ([]domain.QueryMatch, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	matches, err := s.memory.Query(ctx, query, topK*2)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.QueryMatch, 0, topK)
	for _, match := range matches {
		if metadataTag(match.Metadata) != tag {
			continue
		}
		filtered = append(filtered, match)
		if len(filtered) == topK {
			break
		}
	}
	return filtered, nil
}

// ContextForAgent assembles bounded context entries relevant to an
// objective: interactions and artifacts are ranked separately, merged
// by score and resolved to their handles. Full document text is never
// included; callers expand handles they decide they need.
func (s *AgentMemoryService) ContextForAgent(ctx context.Context, agentName, objective string, topK int) ([]domain.ContextEntry, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	interactions, err := s.FindSimilarInteractions(ctx, objective, topK)
	if err != nil {
		return nil, fmt.Errorf("find interactions: %w", err)
	}
	artifacts, err := s.FindSimilarArtifacts(ctx, objective, topK)
	if err != nil {
		return nil, fmt.Errorf("find artifacts: %w", err)
	}

	merged := make([]domain.QueryMatch, 0, len(interactions)+len(artifacts))
	merged = append(merged, interactions...)
	merged = append(merged, artifacts...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > topK {
		merged = merged[:topK]
	}

	entries := make([]domain.ContextEntry, 0, len(merged))
	for _, match := range merged {
		handle, err := s.store.GetHandleForDocument(ctx, match.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve handle for %s: %w", match.DocumentID, err)
		}
		entries = append(entries, domain.ContextEntry{
			HandleID:   handle.ID,
			DocumentID: match.DocumentID,
			Summary:    handle.Summary,
			KeyPhrases: handle.KeyPhrases,
			Importance: handle.Importance,
			Score:      match.Score,
		})
	}

	logger.Debug("Assembled %d context entries for agent %s", len(entries), agentName)
	return entries, nil
}

func cloneMetadata(metadata map[string]any) map[string]any {
	meta := make(map[string]any, len(metadata)+3)
	for key, value := range metadata {
		meta[key] = value
	}
	return meta
}

func metadataTag(metadata map[string]any) string {
	tag, _ := metadata[sourceTagKey].(string)
	return tag
}
