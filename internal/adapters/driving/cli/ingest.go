package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

var (
	ingestChunkSize int
	ingestOverlap   int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [source-id]",
	Short: "Load source content into memory",
	Long: `Fetches content from one source, or from all configured sources when no
ID is given. Items are normalised, split into chunks when they exceed the
chunk size, and stored through the standard add path; content hashing
makes re-ingesting idempotent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 0, "chunk size in characters (default from settings)")
	ingestCmd.Flags().IntVar(&ingestOverlap, "overlap", -1, "chunk overlap in characters (default from settings)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ingestService.SetChunking(ingestChunkSize, ingestOverlap)

	// The item count is unknown until the stream ends, so the bar is an
	// indeterminate spinner counting processed items.
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Ingesting"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(cmd.ErrOrStderr())
		}),
	)
	progress := func(uri string) {
		bar.Add(1) //nolint:errcheck // Progress display is best effort.
		bar.Describe(fmt.Sprintf("Ingesting %s", shortenURI(uri)))
	}

	ctx := context.Background()
	var report *driving.IngestReport
	var err error

	if len(args) > 0 {
		report, err = ingestService.Ingest(ctx, args[0], progress)
	} else {
		report, err = ingestService.IngestAll(ctx, progress)
	}

	bar.Finish() //nolint:errcheck // Progress display is best effort.

	// IngestAll keeps going past per-source failures and reports what it
	// managed; show that before surfacing the error.
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}

func printReport(cmd *cobra.Command, report *driving.IngestReport) {
	cmd.Println("Ingest complete:")
	cmd.Printf("  Fetched:    %d items\n", report.ItemsFetched)
	cmd.Printf("  Stored:     %d documents\n", report.DocumentsStored)
	cmd.Printf("  Duplicates: %d\n", report.Duplicates)
	cmd.Printf("  Skipped:    %d\n", report.Skipped)
	cmd.Printf("  Errors:     %d\n", report.Errors)
}

// shortenURI keeps progress lines on one row.
func shortenURI(uri string) string {
	const limit = 48
	runes := []rune(uri)
	if len(runes) <= limit {
		return uri
	}
	return "..." + string(runes[len(runes)-limit:])
}
