// Package cli wires the cobra command tree for the memora binary.
// Services are built once by the composition root and injected into
// package-scoped variables before commands run.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
	"github.com/custodia-labs/memora-cli/internal/logger"
)

// Persistent flags.
var (
	verbose bool
	dataDir string
)

// Injected services. Tests swap these for fakes.
var (
	memoryService   driving.MemoryService
	contextService  driving.ContextService
	agentService    driving.AgentMemoryService
	sourceService   driving.SourceService
	ingestService   driving.IngestService
	settingsService driving.SettingsService
)

// bootstrap builds the service graph after persistent flags are parsed,
// so --data-dir can pick the storage location before anything opens the
// database. The composition root injects it; tests leave it nil and set
// services directly.
var bootstrap func(dataDir string) error

var rootCmd = &cobra.Command{
	Use:   "memora",
	Short: "Local memory with handle-based retrieval",
	Long: `Memora stores text as immutable, content-deduplicated documents and
ranks them against free-text queries using dense embeddings when a
provider is reachable, TF-IDF otherwise.

Query results and listings return bounded context handles; full document
text is only retrieved when a handle is expanded.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if bootstrap == nil || !needsServices(cmd) {
			return nil
		}
		return bootstrap(dataDir)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.memora)")
}

// needsServices reports whether a command requires the service graph.
// Version and help run without touching storage or the network.
func needsServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return false
	}
	return true
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetBootstrap registers the startup hook that builds services once
// persistent flags are known.
func SetBootstrap(fn func(dataDir string) error) {
	bootstrap = fn
}

// SetMemoryService injects the memory service.
func SetMemoryService(s driving.MemoryService) {
	memoryService = s
}

// SetContextService injects the context handle service.
func SetContextService(s driving.ContextService) {
	contextService = s
}

// SetAgentService injects the agent memory facade.
func SetAgentService(s driving.AgentMemoryService) {
	agentService = s
}

// SetSourceService injects the source configuration service.
func SetSourceService(s driving.SourceService) {
	sourceService = s
}

// SetIngestService injects the ingestion service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}
