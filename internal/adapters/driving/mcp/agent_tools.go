package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// StoreInteractionInput is the input schema for the store_interaction tool.
type StoreInteractionInput struct {
	Source          string         `json:"source" jsonschema:"which agent or integration produced the interaction"`
	InteractionType string         `json:"interaction_type" jsonschema:"kind of interaction, for example conversation or task"`
	Content         string         `json:"content" jsonschema:"the interaction text to remember"`
	Metadata        map[string]any `json:"metadata,omitempty" jsonschema:"optional metadata stored with the interaction"`
}

// StoreArtifactInput is the input schema for the store_artifact tool.
type StoreArtifactInput struct {
	Name         string         `json:"name" jsonschema:"artifact name"`
	ArtifactType string         `json:"artifact_type" jsonschema:"kind of artifact, for example decision or snippet"`
	Content      string         `json:"content" jsonschema:"the artifact content to remember"`
	Metadata     map[string]any `json:"metadata,omitempty" jsonschema:"optional metadata stored with the artifact"`
}

// StoreOutput is the output schema shared by the store tools.
type StoreOutput struct {
	HandleID string `json:"handle_id"`
}

// FindSimilarInput is the input schema for the find_similar tool.
type FindSimilarInput struct {
	Query string `json:"query" jsonschema:"free text to match against stored entries"`
	Kind  string `json:"kind,omitempty" jsonschema:"what to search: interactions (default) or artifacts"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of matches to return (default 10)"`
}

// AgentContextInput is the input schema for the agent_context tool.
type AgentContextInput struct {
	AgentName string `json:"agent_name" jsonschema:"name of the agent requesting context"`
	Objective string `json:"objective" jsonschema:"what the agent is trying to accomplish"`
	TopK      int    `json:"top_k,omitempty" jsonschema:"maximum number of entries to return (default 10)"`
}

// ContextEntryOutput is one bounded context entry for an agent.
type ContextEntryOutput struct {
	HandleID   string   `json:"handle_id"`
	DocumentID string   `json:"document_id"`
	Summary    string   `json:"summary"`
	KeyPhrases []string `json:"key_phrases,omitempty"`
	Importance float64  `json:"importance"`
	Score      float64  `json:"score"`
}

// AgentContextOutput is the output schema for the agent_context tool.
type AgentContextOutput struct {
	Entries []ContextEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

// registerAgentTools registers the agent-facing tool handlers.
func (s *Server) registerAgentTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "store_interaction",
		Description: "Store an agent interaction under a deterministic document ID",
	}, s.handleStoreInteraction)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "store_artifact",
		Description: "Store a project artifact under a deterministic document ID",
	}, s.handleStoreArtifact)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_similar",
		Description: "Rank stored interactions or artifacts against a query",
	}, s.handleFindSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "agent_context",
		Description: "Assemble bounded context entries for an agent's objective",
	}, s.handleAgentContext)
}

// handleStoreInteraction handles the store_interaction tool invocation.
func (s *Server) handleStoreInteraction(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StoreInteractionInput,
) (*mcp.CallToolResult, StoreOutput, error) {
	handleID, err := s.ports.Agent.StoreInteraction(ctx, input.Source, input.InteractionType, input.Content, input.Metadata)
	if err != nil {
		return nil, StoreOutput{}, err
	}
	return nil, StoreOutput{HandleID: handleID}, nil
}

// handleStoreArtifact handles the store_artifact tool invocation.
func (s *Server) handleStoreArtifact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StoreArtifactInput,
) (*mcp.CallToolResult, StoreOutput, error) {
	handleID, err := s.ports.Agent.StoreArtifact(ctx, input.Name, input.ArtifactType, input.Content, input.Metadata)
	if err != nil {
		return nil, StoreOutput{}, err
	}
	return nil, StoreOutput{HandleID: handleID}, nil
}

// handleFindSimilar handles the find_similar tool invocation.
func (s *Server) handleFindSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindSimilarInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	var matches []domain.QueryMatch
	var err error

	switch input.Kind {
	case "", "interaction", "interactions":
		matches, err = s.ports.Agent.FindSimilarInteractions(ctx, input.Query, topK)
	case "artifact", "artifacts":
		matches, err = s.ports.Agent.FindSimilarArtifacts(ctx, input.Query, topK)
	default:
		return nil, QueryOutput{}, fmt.Errorf("unknown kind %q, want interactions or artifacts", input.Kind)
	}
	if err != nil {
		return nil, QueryOutput{}, err
	}

	return nil, QueryOutput{
		Matches: matchesToOutput(matches),
		Count:   len(matches),
	}, nil
}

// handleAgentContext handles the agent_context tool invocation.
func (s *Server) handleAgentContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AgentContextInput,
) (*mcp.CallToolResult, AgentContextOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	entries, err := s.ports.Agent.ContextForAgent(ctx, input.AgentName, input.Objective, topK)
	if err != nil {
		return nil, AgentContextOutput{}, err
	}

	output := AgentContextOutput{
		Entries: make([]ContextEntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i := range entries {
		output.Entries[i] = ContextEntryOutput{
			HandleID:   entries[i].HandleID,
			DocumentID: entries[i].DocumentID,
			Summary:    entries[i].Summary,
			KeyPhrases: entries[i].KeyPhrases,
			Importance: entries[i].Importance,
			Score:      entries[i].Score,
		}
	}

	return nil, output, nil
}
