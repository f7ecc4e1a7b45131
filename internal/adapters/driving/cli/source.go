package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

var (
	sourceID           string
	sourcePath         string
	sourceInclude      []string
	sourceExclude      []string
	sourceRepo         string
	sourceContentTypes []string
	sourceToken        string
	sourceFolderID     string
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage ingestion sources",
	Long: `Register, list, or remove ingestion sources. Sources are fetched on
demand by 'memora ingest'; removing one keeps its already-ingested
documents in memory.`,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add [type] [name]",
	Short: "Register a new source",
	Long: `Registers an ingestion source. The configuration is validated against
the live source before it is saved.

Types and their flags:
  filesystem  --path (required), --include, --exclude
  github      --repo owner/name (required), --content-types, --token
  gdrive      --folder-id (required), --token`,
	Args: cobra.ExactArgs(2),
	RunE: runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	Args:  cobra.NoArgs,
	RunE:  runSourceList,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [source-id]",
	Short: "Remove a source configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

func init() {
	sourceAddCmd.Flags().StringVar(&sourceID, "id", "", "source ID (default derived from the name)")
	sourceAddCmd.Flags().StringVar(&sourcePath, "path", "", "directory to ingest (filesystem)")
	sourceAddCmd.Flags().StringArrayVar(&sourceInclude, "include", nil, "include glob, relative to path (filesystem, repeatable)")
	sourceAddCmd.Flags().StringArrayVar(&sourceExclude, "exclude", nil, "exclude glob, relative to path (filesystem, repeatable)")
	sourceAddCmd.Flags().StringVar(&sourceRepo, "repo", "", "repository as owner/name (github)")
	sourceAddCmd.Flags().StringArrayVar(&sourceContentTypes, "content-types", nil, "content to fetch: issues, prs (github, repeatable)")
	sourceAddCmd.Flags().StringVar(&sourceToken, "token", "", "access token (github, gdrive)")
	sourceAddCmd.Flags().StringVar(&sourceFolderID, "folder-id", "", "folder to ingest (gdrive)")

	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sourceType := domain.SourceType(strings.ToLower(args[0]))
	name := strings.TrimSpace(args[1])
	if !sourceType.IsValid() {
		return fmt.Errorf("unknown source type %q (available: filesystem, github, gdrive)", args[0])
	}
	if name == "" {
		return errors.New("source name must not be blank")
	}

	id := sourceID
	if id == "" {
		id = slugify(name)
	}
	if id == "" {
		return errors.New("source name must contain letters or digits")
	}

	config, err := sourceConfig(sourceType)
	if err != nil {
		return err
	}

	source := domain.Source{
		ID:     id,
		Name:   name,
		Type:   sourceType,
		Config: config,
	}

	cmd.Printf("Validating %s source...\n", sourceType)
	if err := sourceService.Add(context.Background(), source); err != nil {
		return fmt.Errorf("add source failed: %w", err)
	}

	cmd.Printf("Source %s added.\n", id)
	cmd.Printf("Run 'memora ingest %s' to load its content.\n", id)
	return nil
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(context.Background())
	if err != nil {
		return fmt.Errorf("list sources failed: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		cmd.Println("Run 'memora source add' to register one.")
		return nil
	}

	cmd.Println("Configured sources:")
	cmd.Println()
	for i := range sources {
		s := &sources[i]
		cmd.Printf("  %s\n", s.ID)
		cmd.Printf("    Name:    %s\n", s.Name)
		cmd.Printf("    Type:    %s\n", s.Type)
		cmd.Printf("    Created: %s\n", s.CreatedAt.Format(timeFormat))
		cmd.Println()
	}

	cmd.Printf("Total: %d sources\n", len(sources))
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	id := args[0]
	if err := sourceService.Remove(context.Background(), id); err != nil {
		return fmt.Errorf("remove source failed: %w", err)
	}

	cmd.Printf("Source %s removed. Ingested documents remain stored.\n", id)
	return nil
}

// sourceConfig assembles the type-specific configuration map from flags.
func sourceConfig(sourceType domain.SourceType) (map[string]any, error) {
	switch sourceType {
	case domain.SourceTypeFilesystem:
		if sourcePath == "" {
			return nil, errors.New("--path is required for filesystem sources")
		}
		config := map[string]any{"path": sourcePath}
		if len(sourceInclude) > 0 {
			config["include"] = sourceInclude
		}
		if len(sourceExclude) > 0 {
			config["exclude"] = sourceExclude
		}
		return config, nil

	case domain.SourceTypeGitHub:
		if sourceRepo == "" {
			return nil, errors.New("--repo is required for github sources")
		}
		config := map[string]any{"repo": sourceRepo}
		if len(sourceContentTypes) > 0 {
			config["content_types"] = sourceContentTypes
		}
		if sourceToken != "" {
			config["token"] = sourceToken
		}
		return config, nil

	case domain.SourceTypeGoogleDrive:
		if sourceFolderID == "" {
			return nil, errors.New("--folder-id is required for gdrive sources")
		}
		config := map[string]any{"folder_id": sourceFolderID}
		if sourceToken != "" {
			config["token"] = sourceToken
		}
		return config, nil

	default:
		return nil, fmt.Errorf("unknown source type %q", sourceType)
	}
}

// slugify derives a source ID from a display name.
func slugify(name string) string {
	parts := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(parts, "-")
}
