package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var expandJSON bool

var expandCmd = &cobra.Command{
	Use:   "expand [handle-id]",
	Short: "Expand a handle to its full document",
	Long: `Resolves a context handle and prints the full stored document.
Expansion is the only operation that retrieves complete text.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	if contextService == nil {
		return errors.New("context service not configured")
	}

	expanded, err := contextService.Expand(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("expand failed: %w", err)
	}

	if expandJSON {
		return printJSON(cmd, expandedToOutput(expanded))
	}

	doc := &expanded.Document
	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Handle:    %s\n", expanded.Handle.ID)
	cmd.Printf("  Embedding: %s\n", doc.EmbeddingKind)
	cmd.Printf("  Created:   %s\n", doc.CreatedAt.Format(timeFormat))
	if len(doc.Metadata) > 0 {
		cmd.Println("\n  Metadata:")
		printMetadata(cmd, "    ", doc.Metadata)
	}
	cmd.Println()
	cmd.Println(doc.Text)
	return nil
}
