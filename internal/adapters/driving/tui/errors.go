package tui

import "errors"

// ErrMissingMemoryService is returned when the memory service is not provided.
var ErrMissingMemoryService = errors.New("tui: memory service is required")

// ErrMissingContextService is returned when the context service is not provided.
var ErrMissingContextService = errors.New("tui: context service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
