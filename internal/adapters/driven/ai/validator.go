package ai

import (
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator adapts the provider ping check to the
// driven.AIConfigValidator port, letting the settings service verify
// embedding credentials before persisting them.
type ConfigValidator struct{}

// NewConfigValidator creates a validator backed by live provider pings.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding pings the configured provider; a nil or unconfigured
// settings value passes, since lexical-only operation needs no provider.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(config)
}
