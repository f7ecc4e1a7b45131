package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// MockMemoryService implements driving.MemoryService for testing.
type MockMemoryService struct {
	AddFunc              func(ctx context.Context, documentID, text string, metadata map[string]any) (string, error)
	QueryFunc            func(ctx context.Context, text string, topK int) ([]domain.QueryMatch, error)
	DocumentByHandleFunc func(ctx context.Context, handleID string) (*domain.ExpandedDocument, error)
	StatsFunc            func(ctx context.Context) (*domain.MemoryStats, error)
}

func (m *MockMemoryService) Add(
	ctx context.Context, documentID, text string, metadata map[string]any,
) (string, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, documentID, text, metadata)
	}
	return "", nil
}

func (m *MockMemoryService) Query(ctx context.Context, text string, topK int) ([]domain.QueryMatch, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, text, topK)
	}
	return nil, nil
}

func (m *MockMemoryService) DocumentByHandle(ctx context.Context, handleID string) (*domain.ExpandedDocument, error) {
	if m.DocumentByHandleFunc != nil {
		return m.DocumentByHandleFunc(ctx, handleID)
	}
	return nil, nil
}

func (m *MockMemoryService) Stats(ctx context.Context) (*domain.MemoryStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return nil, nil
}

// MockContextService implements driving.ContextService for testing.
type MockContextService struct {
	HandlesFunc func(ctx context.Context, filter domain.HandleFilter) ([]domain.ContextHandle, error)
	ExpandFunc  func(ctx context.Context, handleID string) (*domain.ExpandedDocument, error)
}

func (m *MockContextService) Handles(
	ctx context.Context, filter domain.HandleFilter,
) ([]domain.ContextHandle, error) {
	if m.HandlesFunc != nil {
		return m.HandlesFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockContextService) Expand(ctx context.Context, handleID string) (*domain.ExpandedDocument, error) {
	if m.ExpandFunc != nil {
		return m.ExpandFunc(ctx, handleID)
	}
	return nil, nil
}

func TestNewPorts(t *testing.T) {
	memory := &MockMemoryService{}
	contextService := &MockContextService{}

	ports := NewPorts(memory, contextService)

	require.NotNil(t, ports)
	assert.Equal(t, memory, ports.Memory)
	assert.Equal(t, contextService, ports.Context)
}

func TestPorts_Validate_AllSet(t *testing.T) {
	ports := &Ports{
		Memory:  &MockMemoryService{},
		Context: &MockContextService{},
	}

	err := ports.Validate()

	assert.NoError(t, err)
}

func TestPorts_Validate_MissingMemory(t *testing.T) {
	ports := &Ports{
		Memory:  nil,
		Context: &MockContextService{},
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingMemoryService)
}

func TestPorts_Validate_MissingContext(t *testing.T) {
	ports := &Ports{
		Memory:  &MockMemoryService{},
		Context: nil,
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingContextService)
}
