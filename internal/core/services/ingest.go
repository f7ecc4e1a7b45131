package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
	"github.com/custodia-labs/memora-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// ChunkerFactory builds a chunker for one ingest run.
type ChunkerFactory func(size, overlap int) driven.Chunker

// IngestService bulk-loads source content into memory. Items are
// fetched, normalised, chunked when long, and stored through the same
// Add path interactive use takes, so content hashing keeps re-ingestion
// idempotent.
type IngestService struct {
	sourceStore driven.SourceStore
	registry    driven.SourceRegistry
	normalisers driven.NormaliserRegistry
	memory      driving.MemoryService
	store       driven.MemoryStore
	settings    driving.SettingsService
	newChunker  ChunkerFactory

	// Per-run overrides; chunkOverlap -1 means "use configured".
	chunkSize    int
	chunkOverlap int
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	sourceStore driven.SourceStore,
	registry driven.SourceRegistry,
	normalisers driven.NormaliserRegistry,
	memory driving.MemoryService,
	store driven.MemoryStore,
	settings driving.SettingsService,
	newChunker ChunkerFactory,
) *IngestService {
	return &IngestService{
		sourceStore:  sourceStore,
		registry:     registry,
		normalisers:  normalisers,
		memory:       memory,
		store:        store,
		settings:     settings,
		newChunker:   newChunker,
		chunkOverlap: -1,
	}
}

// SetChunking overrides chunk size and overlap for subsequent runs.
func (s *IngestService) SetChunking(size, overlap int) {
	if size > 0 {
		s.chunkSize = size
	}
	if overlap >= 0 {
		s.chunkOverlap = overlap
	}
}

// Ingest processes one source.
func (s *IngestService) Ingest(ctx context.Context, sourceID string, progress func(uri string)) (*driving.IngestReport, error) {
	source, err := s.sourceStore.Get(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return s.ingestSource(ctx, *source, progress)
}

// IngestAll processes every configured source. Failures in one source do
// not stop the others; all errors come back joined.
func (s *IngestService) IngestAll(ctx context.Context, progress func(uri string)) (*driving.IngestReport, error) {
	sources, err := s.sourceStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	total := &driving.IngestReport{}
	var errs []error
	for _, source := range sources {
		report, err := s.ingestSource(ctx, source, progress)
		total.Merge(report)
		if err != nil {
			errs = append(errs, fmt.Errorf("ingest %s: %w", source.ID, err))
		}
	}

	if len(errs) > 0 {
		return total, errors.Join(errs...)
	}
	return total, nil
}

// IngestFile stores a single local file. Watch mode calls this per
// filesystem event.
func (s *IngestService) IngestFile(ctx context.Context, sourceID, path string) (*driving.IngestReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	name := filepath.Base(path)
	item := domain.SourceItem{
		SourceID: sourceID,
		URI:      path,
		Title:    name,
		MIMEType: domain.MIMETypeForFile(path),
		Content:  content,
		Metadata: map[string]any{
			"filename":  name,
			"extension": strings.TrimPrefix(filepath.Ext(path), "."),
		},
	}

	report := &driving.IngestReport{ItemsFetched: 1}
	s.processItem(ctx, &item, s.chunkerForRun(), report)
	return report, nil
}

func (s *IngestService) ingestSource(ctx context.Context, source domain.Source, progress func(uri string)) (*driving.IngestReport, error) {
	src, err := s.registry.Resolve(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	defer src.Close()

	if err := src.Validate(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceValidation, err)
	}

	logger.Info("Ingesting source %s (%s)", source.ID, source.Type)

	report := &driving.IngestReport{}
	itemsCh, errsCh := src.Fetch(ctx)
	if err := s.processItems(ctx, itemsCh, errsCh, s.chunkerForRun(), progress, report); err != nil {
		return report, err
	}

	logger.Info("Ingest complete for %s: %d fetched, %d stored, %d duplicates, %d skipped, %d errors",
		source.ID, report.ItemsFetched, report.DocumentsStored, report.Duplicates, report.Skipped, report.Errors)
	return report, nil
}

// processItems consumes the fetch channels until both close.
func (s *IngestService) processItems(
	ctx context.Context,
	itemsCh <-chan domain.SourceItem,
	errsCh <-chan error,
	chunker driven.Chunker,
	progress func(uri string),
	report *driving.IngestReport,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil {
				return fmt.Errorf("fetch: %w", err)
			}

		case item, ok := <-itemsCh:
			if !ok {
				// The item channel can close while a trailing error
				// still sits in the error channel; drain it.
				if errsCh != nil {
					if err, open := <-errsCh; open && err != nil {
						return fmt.Errorf("fetch: %w", err)
					}
				}
				return nil
			}

			report.ItemsFetched++
			if progress != nil {
				progress(item.URI)
			}
			s.processItem(ctx, &item, chunker, report)
		}
	}
}

// processItem stores one item, folding the outcome into the report.
func (s *IngestService) processItem(ctx context.Context, item *domain.SourceItem, chunker driven.Chunker, report *driving.IngestReport) {
	err := s.storeItem(ctx, item, chunker, report)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnsupportedType):
		report.Skipped++
		logger.Debug("Skipping %s: %v", item.URI, err)
	default:
		report.Errors++
		logger.Debug("Failed to process %s: %v", item.URI, err)
	}
}

func (s *IngestService) storeItem(ctx context.Context, item *domain.SourceItem, chunker driven.Chunker, report *driving.IngestReport) error {
	result, err := s.normalisers.Normalise(ctx, item)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		report.Skipped++
		logger.Debug("Skipping %s: empty after normalisation", item.URI)
		return nil
	}

	chunks := chunker.Split(text)
	for i, chunkText := range chunks {
		meta := itemMetadata(item, result.Title)
		if len(chunks) > 1 {
			meta["chunk_index"] = i
			meta["chunk_count"] = len(chunks)
		}

		stored, err := s.addDocument(ctx, uuid.New().String(), chunkText, meta)
		if err != nil {
			return err
		}
		if stored {
			report.DocumentsStored++
		} else {
			report.Duplicates++
		}
	}
	return nil
}

// addDocument stores one text through the standard Add path. The hash
// pre-check lets re-ingested content count as a duplicate; Add dedups
// again under concurrent writers.
func (s *IngestService) addDocument(ctx context.Context, docID, text string, meta map[string]any) (bool, error) {
	_, err := s.store.GetDocumentByHash(ctx, domain.TextHash(text))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	if _, err := s.memory.Add(ctx, docID, text, meta); err != nil {
		return false, err
	}
	return true, nil
}

// chunkerForRun applies per-run overrides over configured defaults.
func (s *IngestService) chunkerForRun() driven.Chunker {
	size, overlap := s.chunkSize, s.chunkOverlap

	if size <= 0 || overlap < 0 {
		if settings, err := s.settings.Get(); err == nil {
			if size <= 0 {
				size = settings.Ingest.ChunkSize
			}
			if overlap < 0 {
				overlap = settings.Ingest.ChunkOverlap
			}
		}
	}

	return s.newChunker(size, overlap)
}

func itemMetadata(item *domain.SourceItem, title string) map[string]any {
	meta := make(map[string]any, len(item.Metadata)+4)
	for k, v := range item.Metadata {
		meta[k] = v
	}
	meta["source_id"] = item.SourceID
	meta["uri"] = item.URI
	if title != "" {
		meta["title"] = title
	} else if item.Title != "" {
		meta["title"] = item.Title
	}
	return meta
}
