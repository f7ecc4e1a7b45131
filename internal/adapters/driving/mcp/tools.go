package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// defaultTopK bounds result counts when the caller leaves top_k unset.
const defaultTopK = 10

// MatchOutput is one ranked similarity hit.
type MatchOutput struct {
	DocumentID string         `json:"document_id"`
	Score      float64        `json:"score"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// HandleOutput is the bounded handle record exposed to assistants.
// It never carries document text.
type HandleOutput struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	ContextType string    `json:"context_type"`
	Summary     string    `json:"summary"`
	KeyPhrases  []string  `json:"key_phrases,omitempty"`
	Importance  float64   `json:"importance"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddInput is the input schema for the memory_add tool.
type AddInput struct {
	Text       string         `json:"text" jsonschema:"the text to remember"`
	DocumentID string         `json:"document_id,omitempty" jsonschema:"optional document ID, derived from the content hash when omitted"`
	Metadata   map[string]any `json:"metadata,omitempty" jsonschema:"optional metadata stored with the document"`
}

// AddOutput is the output schema for the memory_add tool.
type AddOutput struct {
	HandleID   string `json:"handle_id"`
	DocumentID string `json:"document_id"`
}

// QueryInput is the input schema for the memory_query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"free text to rank stored documents against"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of matches to return (default 10)"`
}

// QueryOutput is the output schema for the memory_query tool.
type QueryOutput struct {
	Matches []MatchOutput `json:"matches"`
	Count   int           `json:"count"`
}

// HandlesInput is the input schema for the context_handles tool.
type HandlesInput struct {
	ContextType   string  `json:"context_type,omitempty" jsonschema:"filter by context type, empty matches all"`
	MinImportance float64 `json:"min_importance,omitempty" jsonschema:"inclusive lower bound on importance, 0 to 1"`
}

// HandlesOutput is the output schema for the context_handles tool.
type HandlesOutput struct {
	Handles []HandleOutput `json:"handles"`
	Count   int            `json:"count"`
}

// ExpandInput is the input schema for the expand_handle tool.
type ExpandInput struct {
	HandleID string `json:"handle_id" jsonschema:"the handle to expand to its full document"`
}

// ExpandOutput is the output schema for the expand_handle tool.
type ExpandOutput struct {
	DocumentID string         `json:"document_id"`
	Text       string         `json:"text"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Handle     HandleOutput   `json:"handle"`
}

// StatsInput is the empty input schema for the memory_stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the memory_stats tool.
type StatsOutput struct {
	TotalDocuments   int            `json:"total_documents"`
	TotalHandles     int            `json:"total_handles"`
	EmbeddingKinds   map[string]int `json:"embedding_kinds"`
	Strategy         string         `json:"strategy"`
	DenseAvailable   bool           `json:"dense_available"`
	SparseAvailable  bool           `json:"sparse_available"`
	LexicalAvailable bool           `json:"lexical_available"`
	StorageLocation  string         `json:"storage_location"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "memory_add",
		Description: "Store text in memory and get back a context handle ID",
	}, s.handleAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "memory_query",
		Description: "Rank stored documents against free text, best first",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "context_handles",
		Description: "List bounded context handle records without document text",
	}, s.handleHandles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "expand_handle",
		Description: "Expand a context handle to its full document text",
	}, s.handleExpand)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "memory_stats",
		Description: "Report corpus counts, active strategy, and storage location",
	}, s.handleStats)

	s.registerAgentTools()
}

// handleAdd handles the memory_add tool invocation.
func (s *Server) handleAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddInput,
) (*mcp.CallToolResult, AddOutput, error) {
	documentID := input.DocumentID
	if documentID == "" {
		documentID = "doc_" + domain.ShortHash(input.Text)
	}

	handleID, err := s.ports.Memory.Add(ctx, documentID, input.Text, input.Metadata)
	if err != nil {
		return nil, AddOutput{}, err
	}

	return nil, AddOutput{HandleID: handleID, DocumentID: documentID}, nil
}

// handleQuery handles the memory_query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	matches, err := s.ports.Memory.Query(ctx, input.Query, topK)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	return nil, QueryOutput{
		Matches: matchesToOutput(matches),
		Count:   len(matches),
	}, nil
}

// handleHandles handles the context_handles tool invocation.
func (s *Server) handleHandles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HandlesInput,
) (*mcp.CallToolResult, HandlesOutput, error) {
	filter := domain.HandleFilter{
		ContextType:   domain.ContextType(input.ContextType),
		MinImportance: input.MinImportance,
	}

	handles, err := s.ports.Context.Handles(ctx, filter)
	if err != nil {
		return nil, HandlesOutput{}, err
	}

	output := HandlesOutput{
		Handles: make([]HandleOutput, len(handles)),
		Count:   len(handles),
	}
	for i := range handles {
		output.Handles[i] = handleToOutput(handles[i])
	}

	return nil, output, nil
}

// handleExpand handles the expand_handle tool invocation.
func (s *Server) handleExpand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExpandInput,
) (*mcp.CallToolResult, ExpandOutput, error) {
	expanded, err := s.ports.Context.Expand(ctx, input.HandleID)
	if err != nil {
		return nil, ExpandOutput{}, err
	}

	return nil, ExpandOutput{
		DocumentID: expanded.Document.ID,
		Text:       expanded.Document.Text,
		Metadata:   expanded.Document.Metadata,
		Handle:     handleToOutput(expanded.Handle),
	}, nil
}

// handleStats handles the memory_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Memory.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	kinds := make(map[string]int, len(stats.EmbeddingKinds))
	for kind, count := range stats.EmbeddingKinds {
		kinds[kind.String()] = count
	}

	return nil, StatsOutput{
		TotalDocuments:   stats.TotalDocuments,
		TotalHandles:     stats.TotalHandles,
		EmbeddingKinds:   kinds,
		Strategy:         stats.Strategy.String(),
		DenseAvailable:   stats.Availability.Dense,
		SparseAvailable:  stats.Availability.Sparse,
		LexicalAvailable: stats.Availability.Lexical,
		StorageLocation:  stats.StorageLocation,
	}, nil
}

func matchesToOutput(matches []domain.QueryMatch) []MatchOutput {
	out := make([]MatchOutput, len(matches))
	for i := range matches {
		out[i] = MatchOutput{
			DocumentID: matches[i].DocumentID,
			Score:      matches[i].Score,
			Metadata:   matches[i].Metadata,
		}
	}
	return out
}

func handleToOutput(handle domain.ContextHandle) HandleOutput {
	return HandleOutput{
		ID:          handle.ID,
		DocumentID:  handle.DocumentID,
		ContextType: handle.ContextType.String(),
		Summary:     handle.Summary,
		KeyPhrases:  handle.KeyPhrases,
		Importance:  handle.Importance,
		CreatedAt:   handle.CreatedAt,
	}
}
