package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
	"github.com/custodia-labs/memora-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [source-id]",
	Short: "Watch filesystem sources and ingest changes",
	Long: `Watches the directory trees of filesystem sources and re-ingests files
as they are created or modified. Runs in the foreground until interrupted.
Only filesystem sources can be watched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchEvent pairs a changed file with the source that owns it.
type watchEvent struct {
	sourceID string
	path     string
}

func runWatch(cmd *cobra.Command, args []string) error {
	if sourceService == nil || ingestService == nil {
		return errors.New("watch services not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources, err := watchableSources(ctx, args)
	if err != nil {
		return err
	}

	events := make(chan watchEvent)
	var wg sync.WaitGroup

	for i := range sources {
		source := sources[i]
		watcher, err := watcherForSource(ctx, source)
		if err != nil {
			return fmt.Errorf("watch %s: %w", source.ID, err)
		}
		defer watcher.Close() //nolint:errcheck // Watchers die with the command.

		paths := watcher.Events(ctx)
		wg.Add(1)
		go func(sourceID string) {
			defer wg.Done()
			for path := range paths {
				events <- watchEvent{sourceID: sourceID, path: path}
			}
		}(source.ID)

		cmd.Printf("Watching %s\n", source.ID)
	}

	go func() {
		wg.Wait()
		close(events)
	}()

	cmd.Println("Press Ctrl+C to stop.")
	for event := range events {
		report, err := ingestService.IngestFile(ctx, event.sourceID, event.path)
		if err != nil {
			logger.Warn("Ingest %s failed: %v", event.path, err)
			continue
		}
		cmd.Printf("%s: %s\n", event.path, fileOutcome(report))
	}

	cmd.Println("Watch stopped.")
	return nil
}

// watchableSources picks the filesystem sources to watch: the one named
// by the argument, or all of them.
func watchableSources(ctx context.Context, args []string) ([]domain.Source, error) {
	if len(args) > 0 {
		source, err := sourceService.Get(ctx, args[0])
		if err != nil {
			return nil, fmt.Errorf("get source: %w", err)
		}
		if source.Type != domain.SourceTypeFilesystem {
			return nil, fmt.Errorf("source %s is %s; only filesystem sources can be watched", source.ID, source.Type)
		}
		return []domain.Source{*source}, nil
	}

	all, err := sourceService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	var sources []domain.Source
	for _, source := range all {
		if source.Type == domain.SourceTypeFilesystem {
			sources = append(sources, source)
		}
	}
	if len(sources) == 0 {
		return nil, errors.New("no filesystem sources configured")
	}
	return sources, nil
}

// watcherForSource resolves the source configuration into a connector
// and opens a watcher over its tree.
func watcherForSource(ctx context.Context, source domain.Source) (*filesystem.Watcher, error) {
	resolved, err := filesystem.NewResolver().Resolve(ctx, source)
	if err != nil {
		return nil, err
	}

	connector, ok := resolved.(*filesystem.Connector)
	if !ok {
		return nil, fmt.Errorf("source %s did not resolve to a filesystem connector", source.ID)
	}
	return filesystem.NewWatcher(connector)
}

// fileOutcome renders one file's ingest report as a short status word.
func fileOutcome(report *driving.IngestReport) string {
	switch {
	case report.DocumentsStored > 1:
		return fmt.Sprintf("stored %d chunks", report.DocumentsStored)
	case report.DocumentsStored == 1:
		return "stored"
	case report.Duplicates > 0:
		return "duplicate"
	case report.Skipped > 0:
		return "skipped"
	case report.Errors > 0:
		return "error"
	default:
		return "no change"
	}
}
