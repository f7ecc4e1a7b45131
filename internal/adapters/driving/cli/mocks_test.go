package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

// mockMemoryService is a mock implementation of driving.MemoryService.
type mockMemoryService struct {
	handleID string
	matches  []domain.QueryMatch
	expanded *domain.ExpandedDocument
	stats    *domain.MemoryStats
	err      error

	addedDocumentID string
	addedText       string
	addedMetadata   map[string]any
	queriedText     string
	queriedTopK     int
}

func (m *mockMemoryService) Add(_ context.Context, documentID, text string, metadata map[string]any) (string, error) {
	m.addedDocumentID = documentID
	m.addedText = text
	m.addedMetadata = metadata
	return m.handleID, m.err
}

func (m *mockMemoryService) Query(_ context.Context, text string, topK int) ([]domain.QueryMatch, error) {
	m.queriedText = text
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
}

func (m *mockAgentService) StoreInteraction(_ context.Context, _, _, _ string, _ map[string]any) (string, error) {
	return m.handleID, m.err
}

func (m *mockAgentService) StoreArtifact(_ context.Context, _, _, _ string, _ map[string]any) (string, error) {
	return m.handleID, m.err
}

func (m *mockAgentService) FindSimilarInteractions(_ context.Context, _ string, _ int) ([]domain.QueryMatch, error) {
	return m.matches, m.err
}

func (m *mockAgentService) FindSimilarArtifacts(_ context.Context, _ string, _ int) ([]domain.QueryMatch, error) {
	return m.matches, m.err
}

func (m *mockAgentService) ContextForAgent(_ context.Context, _, _ string, _ int) ([]domain.ContextEntry, error) {
	return m.entries, m.err
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.Source
	source  *domain.Source
	err     error

	added     *domain.Source
	removedID string
}

func (m *mockSourceService) Add(_ context.Context, source domain.Source) error {
	m.added = &source
	return m.err
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.Source, error) {
	return m.source, m.err
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Remove(_ context.Context, id string) error {
	m.removedID = id
	return m.err
}

func (m *mockSourceService) ValidateConfig(_ context.Context, _ domain.SourceType, _ map[string]any) error {
	return m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report *driving.IngestReport
	err    error

	ingestedSourceID string
	ingestedAll      bool
	ingestedFile     string
	chunkSize        int
	chunkOverlap     int
	progressURIs     []string
}

func (m *mockIngestService) Ingest(_ context.Context, sourceID string, progress func(uri string)) (*driving.IngestReport, error) {
	m.ingestedSourceID = sourceID
	m.emitProgress(progress)
	return m.report, m.err
}

func (m *mockIngestService) IngestAll(_ context.Context, progress func(uri string)) (*driving.IngestReport, error) {
	m.ingestedAll = true
	m.emitProgress(progress)
	return m.report, m.err
}

func (m *mockIngestService) IngestFile(_ context.Context, _, path string) (*driving.IngestReport, error) {
	m.ingestedFile = path
	return m.report, m.err
}

func (m *mockIngestService) SetChunking(size, overlap int) {
	m.chunkSize = size
	m.chunkOverlap = overlap
}

func (m *mockIngestService) emitProgress(progress func(uri string)) {
	if progress == nil {
		return
	}
	for _, uri := range m.progressURIs {
		progress(uri)
	}
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings     *domain.AppSettings
	err          error
	validateErr  error
	wantsDense   bool
	strategySet  domain.StrategyMode
	providerSet  domain.AIProvider
	modelSet     string
	apiKeySet    string
	pingErr      error
	savedSetting *domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.savedSetting = settings
	return m.err
}

func (m *mockSettingsService) SetStrategyMode(mode domain.StrategyMode) error {
	m.strategySet = mode
	return m.err
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.providerSet = provider
	m.modelSet = model
	m.apiKeySet = apiKey
	return m.err
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) RequiresEmbedding() bool {
	return m.wantsDense
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error {
	return m.pingErr
}

// Fixtures shared by the command tests.

var testCreatedAt = time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)

func testHandle() domain.ContextHandle {
	return domain.ContextHandle{
		ID:          "handle-1",
		DocumentID:  "doc-1",
		ContextType: domain.ContextTypeDocument,
		Summary:     "Parser rework notes",
		KeyPhrases:  []string{"parser", "rework"},
		Importance:  0.42,
		CreatedAt:   testCreatedAt,
	}
}

func testExpanded() *domain.ExpandedDocument {
	return &domain.ExpandedDocument{
		Document: domain.Document{
			ID:            "doc-1",
			Text:          "Full parser rework notes with all the detail.",
			TextHash:      "aaaa1111",
			Metadata:      map[string]any{"title": "Parser rework"},
			EmbeddingKind: domain.EmbeddingKindNone,
			CreatedAt:     testCreatedAt,
			UpdatedAt:     testCreatedAt,
		},
		Handle: testHandle(),
	}
}

func testMatches() []domain.QueryMatch {
	return []domain.QueryMatch{
		{
			DocumentID: "doc-1",
			Score:      0.91,
			Metadata:   map[string]any{"title": "Parser rework", "uri": "file:///notes/parser.md"},
		},
		{
			DocumentID: "doc-2",
			Score:      0.55,
		},
	}
}

func testStats() *domain.MemoryStats {
	return &domain.MemoryStats{
		TotalDocuments: 2,
		TotalHandles:   2,
		EmbeddingKinds: map[domain.EmbeddingKind]int{
			domain.EmbeddingKindNone:  1,
			domain.EmbeddingKindDense: 1,
		},
		Strategy: domain.StrategySparse,
		Availability: domain.StrategyAvailability{
			Dense:   false,
			Sparse:  true,
			Lexical: true,
		},
		StorageLocation: "/home/dev/.memora/memora.db",
	}
}

func testSources() []domain.Source {
	return []domain.Source{
		{
			ID:        "notes",
			Name:      "Notes",
			Type:      domain.SourceTypeFilesystem,
			Config:    map[string]any{"path": "/home/dev/notes"},
			CreatedAt: testCreatedAt,
			UpdatedAt: testCreatedAt,
		},
	}
}

// setupTestServices installs mock services and returns a cleanup that
// restores whatever was injected before.
func setupTestServices() func() {
	oldMemory := memoryService
	oldContext := contextService
	oldAgent := agentService
	oldSource := sourceService
	oldIngest := ingestService
	oldSettings := settingsService

	defaultSettings := domain.DefaultAppSettings()

	memoryService = &mockMemoryService{
		handleID: "handle-1",
		matches:  testMatches(),
		expanded: testExpanded(),
		stats:    testStats(),
	}
	contextService = &mockContextService{
		handles:  []domain.ContextHandle{testHandle()},
		expanded: testExpanded(),
	}
	agentService = &mockAgentService{handleID: "handle-1"}
	sourceService = &mockSourceService{
		sources: testSources(),
		source:  &testSources()[0],
	}
	ingestService = &mockIngestService{
		report: &driving.IngestReport{
			ItemsFetched:    3,
			DocumentsStored: 2,
			Duplicates:      1,
		},
	}
	settingsService = &mockSettingsService{settings: &defaultSettings}

	return func() {
		memoryService = oldMemory
		contextService = oldContext
		agentService = oldAgent
		sourceService = oldSource
		ingestService = oldIngest
		settingsService = oldSettings
	}
}
