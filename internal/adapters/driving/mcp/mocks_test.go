package mcp

import (
	"context"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// mockMemoryService is a mock implementation of driving.MemoryService.
type mockMemoryService struct {
	handleID string
	matches  []domain.QueryMatch
	expanded *domain.ExpandedDocument
	stats    *domain.MemoryStats
	err      error

	addedDocumentID string
	queriedTopK     int
}

func (m *mockMemoryService) Add(_ context.Context, documentID, _ string, _ map[string]any) (string, error) {
	m.addedDocumentID = documentID
	return m.handleID, m.err
}

func (m *mockMemoryService) Query(_ context.Context, _ string, topK int) ([]domain.QueryMatch, error) {
	m.queriedTopK = topK
	return m.matches, m.err
}

func (m *mockMemoryService) DocumentByHandle(_ context.Context, _ string) (*domain.ExpandedDocument, error) {
	return m.expanded, m.err
}

func (m *mockMemoryService) Stats(_ context.Context) (*domain.MemoryStats, error) {
	return m.stats, m.err
}

// mockContextService is a mock implementation of driving.ContextService.
type mockContextService struct {
	handles  []domain.ContextHandle
	expanded *domain.ExpandedDocument
	err      error

	filter           domain.HandleFilter
	expandedHandleID string
}

func (m *mockContextService) Handles(_ context.Context, filter domain.HandleFilter) ([]domain.ContextHandle, error) {
	m.filter = filter
	return m.handles, m.err
}

func (m *mockContextService) Expand(_ context.Context, handleID string) (*domain.ExpandedDocument, error) {
	m.expandedHandleID = handleID
	return m.expanded, m.err
}

// mockAgentService is a mock implementation of driving.AgentMemoryService.
type mockAgentService struct {
	handleID string
	matches  []domain.QueryMatch
	entries  []domain.ContextEntry
	err      error

	storedSource     string
	storedName       string
	searchedKind     string
	contextAgent     string
	contextObjective string
}

func (m *mockAgentService) StoreInteraction(_ context.Context, source, _, _ string, _ map[string]any) (string, error) {
	m.storedSource = source
	return m.handleID, m.err
}

func (m *mockAgentService) StoreArtifact(_ context.Context, name, _, _ string, _ map[string]any) (string, error) {
	m.storedName = name
	return m.handleID, m.err
}

func (m *mockAgentService) FindSimilarInteractions(_ context.Context, _ string, _ int) ([]domain.QueryMatch, error) {
	m.searchedKind = "interactions"
	return m.matches, m.err
}

func (m *mockAgentService) FindSimilarArtifacts(_ context.Context, _ string, _ int) ([]domain.QueryMatch, error) {
	m.searchedKind = "artifacts"
	return m.matches, m.err
}

func (m *mockAgentService) ContextForAgent(_ context.Context, agentName, objective string, _ int) ([]domain.ContextEntry, error) {
	m.contextAgent = agentName
	m.contextObjective = objective
	return m.entries, m.err
}

// validPorts builds a Ports with fresh mocks for handler tests.
func validPorts() *Ports {
	return &Ports{
		Memory:  &mockMemoryService{},
		Context: &mockContextService{},
		Agent:   &mockAgentService{},
	}
}
