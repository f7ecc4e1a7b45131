// Package tui provides an interactive terminal user interface for memora.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Memory stores and queries remembered documents.
	Memory driving.MemoryService

	// Context lists and expands context handles.
	Context driving.ContextService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(memory driving.MemoryService, contextService driving.ContextService) *Ports {
	return &Ports{
		Memory:  memory,
		Context: contextService,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Memory == nil {
		return ErrMissingMemoryService
	}
	if p.Context == nil {
		return ErrMissingContextService
	}
	return nil
}
