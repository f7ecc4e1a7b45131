// Package main is the memora entry point. It wires the service graph
// together and hands control to the cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/memora-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/memora-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/memora-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/memora-cli/internal/connectors"
	"github.com/custodia-labs/memora-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/memora-cli/internal/connectors/gdrive"
	"github.com/custodia-labs/memora-cli/internal/connectors/github"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
	"github.com/custodia-labs/memora-cli/internal/core/services"
	"github.com/custodia-labs/memora-cli/internal/logger"
	"github.com/custodia-labs/memora-cli/internal/normalisers"
	"github.com/custodia-labs/memora-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/memora-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/memora-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// closers holds resources opened by bootstrap, released after the
// command tree finishes.
var closers []func()

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap builds the full service graph. The CLI invokes it after
// persistent flags are parsed so --data-dir is honoured before anything
// opens the database.
func bootstrap(dataDir string) error {
	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	appSettings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// The strategy is resolved exactly once per process; queries never
	// re-probe the provider.
	result := ai.ResolveStrategy(appSettings.Memory.Strategy, &appSettings.Embedding)
	for _, warning := range result.Warnings {
		logger.Warn("%s", warning)
	}
	closers = append(closers, result.Close)

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	closers = append(closers, func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Debug("closing store: %v", closeErr)
		}
	})

	memoryStore := store.MemoryStore()

	memoryService := services.NewMemoryService(memoryStore, result.EmbeddingService, result.Strategy)
	contextService := services.NewContextService(memoryStore)
	agentService := services.NewAgentMemoryService(memoryService, memoryStore)

	registry := connectors.NewRegistry(
		filesystem.NewResolver(),
		github.NewResolver(githubToken(settingsService)),
		gdrive.NewResolver(gdriveToken(configStore)),
	)
	normaliserRegistry := normalisers.NewRegistry(markdown.New(), plaintext.New())

	sourceService := services.NewSourceService(store.SourceStore(), registry)
	ingestService := services.NewIngestService(
		store.SourceStore(),
		registry,
		normaliserRegistry,
		memoryService,
		memoryStore,
		settingsService,
		newChunker,
	)

	cli.SetMemoryService(memoryService)
	cli.SetContextService(contextService)
	cli.SetAgentService(agentService)
	cli.SetSourceService(sourceService)
	cli.SetIngestService(ingestService)
	cli.SetSettingsService(settingsService)

	return nil
}

// newChunker builds the splitter for one ingest run.
func newChunker(size, overlap int) driven.Chunker {
	return chunker.New(chunker.WithChunkSize(size), chunker.WithOverlap(overlap))
}

// githubToken reads the GitHub token lazily so sources resolved after a
// settings change pick up the new token without a restart.
func githubToken(settings driving.SettingsService) github.TokenFunc {
	return func() string {
		s, err := settings.Get()
		if err != nil {
			return ""
		}
		return s.GitHub.Token
	}
}

// gdriveToken reads the gdrive.token config key at resolve time.
func gdriveToken(configStore driven.ConfigStore) gdrive.TokenFunc {
	return func() string {
		return configStore.GetString("gdrive.token")
	}
}
