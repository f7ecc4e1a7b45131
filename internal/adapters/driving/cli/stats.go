package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show memory statistics",
	Long: `Prints live corpus counts, the embedding-kind distribution, the active
query strategy, and the storage location.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if memoryService == nil {
		return errors.New("memory service not configured")
	}

	stats, err := memoryService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, statsToOutput(stats))
	}

	cmd.Println("Memory statistics")
	cmd.Println("=================")
	cmd.Println()
	cmd.Printf("  Documents: %d\n", stats.TotalDocuments)
	cmd.Printf("  Handles:   %d\n", stats.TotalHandles)
	cmd.Printf("  Strategy:  %s\n", stats.Strategy.Description())
	cmd.Println()

	cmd.Println("  Embeddings:")
	if len(stats.EmbeddingKinds) == 0 {
		cmd.Println("    (none)")
	}
	kinds := make([]string, 0, len(stats.EmbeddingKinds))
	for kind := range stats.EmbeddingKinds {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		cmd.Printf("    %s: %d\n", kind, stats.EmbeddingKinds[domain.EmbeddingKind(kind)])
	}
	cmd.Println()

	cmd.Println("  Available strategies:")
	cmd.Printf("    dense:   %s\n", availability(stats.Availability.Dense))
	cmd.Printf("    sparse:  %s\n", availability(stats.Availability.Sparse))
	cmd.Printf("    lexical: %s\n", availability(stats.Availability.Lexical))
	cmd.Println()

	cmd.Printf("  Storage: %s\n", stats.StorageLocation)
	return nil
}

func availability(available bool) string {
	if available {
		return "yes"
	}
	return "no"
}
