package query

import "errors"

// Error definitions for the query view.
var (
	// ErrNoMemoryService indicates that no memory service was provided.
	ErrNoMemoryService = errors.New("memory service is required")
)
