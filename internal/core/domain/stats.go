package domain

// MemoryStats is a read-only aggregate over the store.
// Counts reflect live table state, never cached values.
type MemoryStats struct {
	// TotalDocuments is the number of stored documents.
	TotalDocuments int

	// TotalHandles is the number of context handles.
	TotalHandles int

	// EmbeddingKinds is the distribution of stored embedding kinds.
	EmbeddingKinds map[EmbeddingKind]int

	// Strategy is the active query strategy resolved at construction.
	Strategy EmbeddingStrategy

	// Availability reports which strategies this instance can serve.
	Availability StrategyAvailability

	// StorageLocation is the database path.
	StorageLocation string
}
