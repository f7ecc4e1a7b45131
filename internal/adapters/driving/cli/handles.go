package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

var (
	handlesType          string
	handlesMinImportance float64
	handlesJSON          bool
)

var handlesCmd = &cobra.Command{
	Use:   "handles",
	Short: "List context handles",
	Long: `Lists bounded context handles, most important first. Handles carry a
summary and key phrases, never full text; use 'memora expand' to retrieve
the stored document behind one.`,
	Args: cobra.NoArgs,
	RunE: runHandles,
}

func init() {
	handlesCmd.Flags().StringVarP(&handlesType, "type", "t", "", "filter by context type")
	handlesCmd.Flags().Float64Var(&handlesMinImportance, "min-importance", 0, "minimum importance score [0,1]")
	handlesCmd.Flags().BoolVar(&handlesJSON, "json", false, "output handles as JSON")
	rootCmd.AddCommand(handlesCmd)
}

func runHandles(cmd *cobra.Command, _ []string) error {
	if contextService == nil {
		return errors.New("context service not configured")
	}

	filter := domain.HandleFilter{
		ContextType:   domain.ContextType(handlesType),
		MinImportance: handlesMinImportance,
	}

	handles, err := contextService.Handles(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("list handles failed: %w", err)
	}

	if handlesJSON {
		out := make([]handleOutput, len(handles))
		for i, h := range handles {
			out[i] = handleToOutput(h)
		}
		return printJSON(cmd, out)
	}

	if len(handles) == 0 {
		cmd.Println("No handles found.")
		return nil
	}

	cmd.Println("Context handles:")
	cmd.Println()
	for i := range handles {
		h := &handles[i]
		cmd.Printf("  %s\n", h.ID)
		cmd.Printf("    Document:   %s\n", h.DocumentID)
		cmd.Printf("    Importance: %.2f\n", h.Importance)
		cmd.Printf("    Summary:    %s\n", summaryLine(h.Summary))
		if len(h.KeyPhrases) > 0 {
			cmd.Printf("    Phrases:    %s\n", strings.Join(h.KeyPhrases, ", "))
		}
		cmd.Printf("    Created:    %s\n", h.CreatedAt.Format(timeFormat))
		cmd.Println()
	}

	cmd.Printf("Total: %d handles\n", len(handles))
	return nil
}

// summaryLine flattens a summary onto one display line.
func summaryLine(summary string) string {
	flat := strings.Join(strings.Fields(summary), " ")
	const limit = 80
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit]) + "..."
}
