package driving

import "context"

// IngestService bulk-loads source content into memory.
// Ingestion is foreground work: it fetches, normalises, optionally chunks,
// and stores synchronously on the calling goroutine.
type IngestService interface {
	// Ingest processes one source. The progress callback, when non-nil,
	// is invoked once per fetched item before it is processed.
	Ingest(ctx context.Context, sourceID string, progress func(uri string)) (*IngestReport, error)

	// IngestAll processes every configured source in registration order.
	IngestAll(ctx context.Context, progress func(uri string)) (*IngestReport, error)

	// IngestFile stores a single local file through the same
	// normalise-chunk-store path. Used by watch mode.
	IngestFile(ctx context.Context, sourceID, path string) (*IngestReport, error)

	// SetChunking overrides chunk size and overlap for subsequent runs.
	// A non-positive size or a negative overlap keeps the configured
	// default. The CLI applies flag overrides through this before
	// invoking Ingest.
	SetChunking(size, overlap int)
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// ItemsFetched is how many items the sources produced.
	ItemsFetched int

	// DocumentsStored is how many new documents were written.
	DocumentsStored int

	// Duplicates is how many items deduplicated against existing content.
	Duplicates int

	// Skipped is how many items no normaliser accepted, or that
	// normalised to empty text.
	Skipped int

	// Errors is how many items failed to process.
	Errors int
}

// Merge folds another report into this one.
func (r *IngestReport) Merge(other *IngestReport) {
	if other == nil {
		return
	}
	r.ItemsFetched += other.ItemsFetched
	r.DocumentsStored += other.DocumentsStored
	r.Duplicates += other.Duplicates
	r.Skipped += other.Skipped
	r.Errors += other.Errors
}
