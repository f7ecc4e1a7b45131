package domain

const unknownDescription = "Unknown"

// StrategyMode selects how the query strategy is resolved at startup.
type StrategyMode string

// Available strategy modes.
const (
	// StrategyModeAuto pings the configured dense provider once and falls
	// back to sparse scoring when it is unavailable.
	StrategyModeAuto StrategyMode = "auto"

	// StrategyModeDense requests dense scoring; construction degrades to
	// sparse with a warning when the provider cannot be reached.
	StrategyModeDense StrategyMode = "dense"

	// StrategyModeSparse forces corpus-relative TF-IDF scoring.
	StrategyModeSparse StrategyMode = "sparse"

	// StrategyModeLexical forces word-overlap scoring.
	StrategyModeLexical StrategyMode = "lexical"
)

// IsValid returns true if the strategy mode is recognised.
func (m StrategyMode) IsValid() bool {
	switch m {
	case StrategyModeAuto, StrategyModeDense, StrategyModeSparse, StrategyModeLexical:
		return true
	default:
		return false
	}
}

// RequiresProvider returns true if this mode wants a dense embedding provider.
func (m StrategyMode) RequiresProvider() bool {
	return m == StrategyModeAuto || m == StrategyModeDense
}

// String returns the string representation.
func (m StrategyMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m StrategyMode) Description() string {
	switch m {
	case StrategyModeAuto:
		return "Auto (dense when reachable, sparse otherwise)"
	case StrategyModeDense:
		return "Dense (remote embeddings required)"
	case StrategyModeSparse:
		return "Sparse (TF-IDF, no provider needed)"
	case StrategyModeLexical:
		return "Lexical (word overlap, no provider needed)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// MemorySettings holds query strategy configuration.
type MemorySettings struct {
	// Strategy is the configured strategy mode.
	Strategy StrategyMode
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// IngestSettings holds bulk-ingestion configuration.
type IngestSettings struct {
	// ChunkSize is the target chunk length in characters. Texts at or
	// below this length are stored whole.
	ChunkSize int

	// ChunkOverlap is how many characters consecutive chunks share.
	ChunkOverlap int
}

// GitHubSettings holds the token used by the GitHub ingestion source.
type GitHubSettings struct {
	// Token is a personal access token; empty means unauthenticated.
	Token string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Memory holds query strategy settings.
	Memory MemorySettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Ingest holds bulk-ingestion settings.
	Ingest IngestSettings

	// GitHub holds GitHub source settings.
	GitHub GitHubSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The embedding provider is left unconfigured; with no provider the auto
// strategy resolves to sparse scoring.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Memory: MemorySettings{
			Strategy: StrategyModeAuto,
		},
		Embedding: EmbeddingSettings{},
		Ingest: IngestSettings{
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		GitHub: GitHubSettings{},
	}
}

// AllStrategyModes returns all available strategy modes.
func AllStrategyModes() []StrategyMode {
	return []StrategyMode{
		StrategyModeAuto,
		StrategyModeDense,
		StrategyModeSparse,
		StrategyModeLexical,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
