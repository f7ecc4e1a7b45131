package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// timeFormat is the display format for timestamps in table output.
const timeFormat = "2006-01-02 15:04:05"

// Output shapes for --json. The domain types stay tag-free; these
// mirror them with stable lowercase field names.

type matchOutput struct {
	DocumentID string         `json:"document_id"`
	Score      float64        `json:"score"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type handleOutput struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	ContextType string    `json:"context_type"`
	Summary     string    `json:"summary"`
	KeyPhrases  []string  `json:"key_phrases,omitempty"`
	Importance  float64   `json:"importance"`
	CreatedAt   time.Time `json:"created_at"`
}

type documentOutput struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	TextHash  string         `json:"text_hash"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding string         `json:"embedding_kind"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type expandedOutput struct {
	Document documentOutput `json:"document"`
	Handle   handleOutput   `json:"handle"`
}

type statsOutput struct {
	TotalDocuments  int            `json:"total_documents"`
	TotalHandles    int            `json:"total_handles"`
	EmbeddingKinds  map[string]int `json:"embedding_kinds"`
	Strategy        string         `json:"strategy"`
	DenseAvailable  bool           `json:"dense_available"`
	SparseAvailable bool           `json:"sparse_available"`
	StorageLocation string         `json:"storage_location"`
}

func matchesOutput(matches []domain.QueryMatch) []matchOutput {
	out := make([]matchOutput, len(matches))
	for i, m := range matches {
		out[i] = matchOutput{
			DocumentID: m.DocumentID,
			Score:      m.Score,
			Metadata:   m.Metadata,
		}
	}
	return out
}

func handleToOutput(h domain.ContextHandle) handleOutput {
	return handleOutput{
		ID:          h.ID,
		DocumentID:  h.DocumentID,
		ContextType: h.ContextType.String(),
		Summary:     h.Summary,
		KeyPhrases:  h.KeyPhrases,
		Importance:  h.Importance,
		CreatedAt:   h.CreatedAt,
	}
}

func expandedToOutput(doc *domain.ExpandedDocument) expandedOutput {
	return expandedOutput{
		Document: documentOutput{
			ID:        doc.Document.ID,
			Text:      doc.Document.Text,
			TextHash:  doc.Document.TextHash,
			Metadata:  doc.Document.Metadata,
			Embedding: doc.Document.EmbeddingKind.String(),
			CreatedAt: doc.Document.CreatedAt,
			UpdatedAt: doc.Document.UpdatedAt,
		},
		Handle: handleToOutput(doc.Handle),
	}
}

func statsToOutput(stats *domain.MemoryStats) statsOutput {
	kinds := make(map[string]int, len(stats.EmbeddingKinds))
	for kind, count := range stats.EmbeddingKinds {
		kinds[kind.String()] = count
	}
	return statsOutput{
		TotalDocuments:  stats.TotalDocuments,
		TotalHandles:    stats.TotalHandles,
		EmbeddingKinds:  kinds,
		Strategy:        stats.Strategy.String(),
		DenseAvailable:  stats.Availability.Dense,
		SparseAvailable: stats.Availability.Sparse,
		StorageLocation: stats.StorageLocation,
	}
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printMetadata writes metadata entries indented and key-sorted.
func printMetadata(cmd *cobra.Command, indent string, metadata map[string]any) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("%s%s: %v\n", indent, k, metadata[k])
	}
}
