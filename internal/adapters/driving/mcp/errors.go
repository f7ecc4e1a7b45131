// Package mcp provides an MCP (Model Context Protocol) server adapter for
// memora. It lets AI assistants store memory, rank it against queries, and
// expand context handles through tools and resources.
package mcp

import "errors"

// Sentinel errors for missing ports.
var (
	// ErrMissingMemoryService is returned when the memory service is not provided.
	ErrMissingMemoryService = errors.New("mcp: memory service is required")

	// ErrMissingContextService is returned when the context service is not provided.
	ErrMissingContextService = errors.New("mcp: context service is required")

	// ErrMissingAgentService is returned when the agent memory service is not provided.
	ErrMissingAgentService = errors.New("mcp: agent memory service is required")
)
