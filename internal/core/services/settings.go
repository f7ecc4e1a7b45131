package services

import (
	"fmt"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for application settings.
const (
	keyMemoryStrategy  = "memory.strategy"
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key" //nolint:gosec // G101: config key name, not a credential
	keyIngestChunkSize = "ingest.chunk_size"
	keyIngestOverlap   = "ingest.chunk_overlap"
	keyGitHubToken     = "github.token" //nolint:gosec // G101: config key name, not a credential
)

// SettingsService manages application settings persisted in the config store.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Memory: domain.MemorySettings{
			Strategy: s.getStrategyMode(defaults.Memory.Strategy),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		Ingest: domain.IngestSettings{
			ChunkSize:    s.getInt(keyIngestChunkSize, defaults.Ingest.ChunkSize),
			ChunkOverlap: s.getInt(keyIngestOverlap, defaults.Ingest.ChunkOverlap),
		},
		GitHub: domain.GitHubSettings{
			Token: s.configStore.GetString(keyGitHubToken),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyMemoryStrategy, settings.Memory.Strategy.String()); err != nil {
		return fmt.Errorf("save strategy mode: %w", err)
	}

	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	if err := s.configStore.Set(keyIngestChunkSize, settings.Ingest.ChunkSize); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyIngestOverlap, settings.Ingest.ChunkOverlap); err != nil {
		return fmt.Errorf("save chunk overlap: %w", err)
	}

	if settings.GitHub.Token != "" {
		if err := s.configStore.Set(keyGitHubToken, settings.GitHub.Token); err != nil {
			return fmt.Errorf("save github token: %w", err)
		}
	}

	return nil
}

// SetStrategyMode updates the query strategy mode.
func (s *SettingsService) SetStrategyMode(mode domain.StrategyMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid strategy mode: %s", mode)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Memory.Strategy = mode

	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
// An empty model selects the provider default.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	if model != "" {
		settings.Embedding.Model = model
	} else {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}
	if apiKey != "" {
		settings.Embedding.APIKey = apiKey
	}

	return s.Save(settings)
}

// Validate checks if current settings are valid for the configured mode.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Memory.Strategy.IsValid() {
		return fmt.Errorf("invalid strategy mode: %s", settings.Memory.Strategy)
	}

	if settings.Memory.Strategy == domain.StrategyModeDense && !settings.Embedding.IsConfigured() {
		return fmt.Errorf(
			"strategy mode %q requires embedding provider to be configured",
			settings.Memory.Strategy.Description(),
		)
	}

	if settings.Ingest.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", settings.Ingest.ChunkSize)
	}
	if settings.Ingest.ChunkOverlap < 0 || settings.Ingest.ChunkOverlap >= settings.Ingest.ChunkSize {
		return fmt.Errorf(
			"chunk overlap must be within [0, chunk size), got %d",
			settings.Ingest.ChunkOverlap,
		)
	}

	return nil
}

// RequiresEmbedding returns true if the current mode wants a dense provider.
func (s *SettingsService) RequiresEmbedding() bool {
	settings, err := s.Get()
	if err != nil {
		return false
	}
	return settings.Memory.Strategy.RequiresProvider()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getStrategyMode(defaultVal domain.StrategyMode) domain.StrategyMode {
	val := s.configStore.GetString(keyMemoryStrategy)
	if val == "" {
		return defaultVal
	}
	mode := domain.StrategyMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
