package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Rank stored documents against a query",
	Long: `Ranks every stored document against the query text and prints the best
matches. Scoring uses the strategy resolved at startup: dense cosine
similarity when an embedding provider is reachable, TF-IDF otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 10, "maximum number of matches")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output matches as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if memoryService == nil {
		return errors.New("memory service not configured")
	}

	matches, err := memoryService.Query(context.Background(), args[0], queryTopK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return printJSON(cmd, matchesOutput(matches))
	}

	if len(matches) == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	cmd.Println("Matches:")
	cmd.Println()
	for i := range matches {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, matches[i].DocumentID, matches[i].Score)
		if title, ok := matches[i].Metadata["title"].(string); ok && title != "" {
			cmd.Printf("      Title: %s\n", title)
		}
		if uri, ok := matches[i].Metadata["uri"].(string); ok && uri != "" {
			cmd.Printf("      URI: %s\n", uri)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d matches\n", len(matches))
	return nil
}
