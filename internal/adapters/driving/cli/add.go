package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

var (
	addFile string
	addID   string
	addMeta []string
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Store text in memory",
	Long: `Stores text as an immutable document and prints its context handle ID.
Text comes from the argument or from --file. Re-adding identical content
is a no-op that prints the existing handle.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "read text from a file")
	addCmd.Flags().StringVar(&addID, "id", "", "document ID (default derived from content)")
	addCmd.Flags().StringArrayVarP(&addMeta, "meta", "m", nil, "metadata entry as key=value (repeatable)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if memoryService == nil {
		return errors.New("memory service not configured")
	}

	text, err := addText(args)
	if err != nil {
		return err
	}

	meta, err := parseMetadata(addMeta)
	if err != nil {
		return err
	}

	docID := addID
	if docID == "" {
		docID = "doc_" + domain.ShortHash(text)
	}

	handleID, err := memoryService.Add(context.Background(), docID, text, meta)
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	cmd.Printf("Stored document %s\n", docID)
	cmd.Printf("Handle: %s\n", handleID)
	return nil
}

// addText picks the document text from the positional argument or the
// --file flag, rejecting ambiguous invocations.
func addText(args []string) (string, error) {
	if addFile != "" {
		if len(args) > 0 {
			return "", errors.New("pass text as an argument or via --file, not both")
		}
		content, err := os.ReadFile(addFile)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(content), nil
	}

	if len(args) == 0 {
		return "", errors.New("no text given: pass it as an argument or via --file")
	}
	return args[0], nil
}

// parseMetadata converts repeated key=value flags into a metadata map.
func parseMetadata(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	meta := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q, expected key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}
