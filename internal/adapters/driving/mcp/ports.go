package mcp

import (
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server exposes.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Memory stores documents and answers similarity queries.
	Memory driving.MemoryService

	// Context lists and expands context handles.
	Context driving.ContextService

	// Agent is the agent-facing memory facade.
	Agent driving.AgentMemoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Memory == nil {
		return ErrMissingMemoryService
	}
	if p.Context == nil {
		return ErrMissingContextService
	}
	if p.Agent == nil {
		return ErrMissingAgentService
	}
	return nil
}
