package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingMemoryService,
		ErrMissingContextService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingMemoryService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingMemoryService.Error(), "memory service")
}

func TestErrMissingContextService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingContextService.Error(), "context service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
