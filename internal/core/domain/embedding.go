package domain

// EmbeddingKind records how a stored document was embedded.
type EmbeddingKind string

const (
	// EmbeddingKindDense is a persisted dense vector from an embedding model.
	EmbeddingKindDense EmbeddingKind = "dense"

	// EmbeddingKindNone means no vector was persisted. The document is
	// scored by corpus-relative or lexical strategies at query time.
	EmbeddingKindNone EmbeddingKind = "none"
)

// IsValid returns true if the embedding kind is recognised.
func (k EmbeddingKind) IsValid() bool {
	switch k {
	case EmbeddingKindDense, EmbeddingKindNone:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k EmbeddingKind) String() string {
	return string(k)
}

// EmbeddingStrategy identifies how queries are scored against the corpus.
// The strategy is resolved once at construction and never re-probed per
// call; only a per-call dense embedding failure advances a single query to
// the next strategy in the chain.
type EmbeddingStrategy string

const (
	// StrategyDense scores by cosine similarity over persisted dense
	// vectors. Documents without a dense vector do not participate.
	StrategyDense EmbeddingStrategy = "dense"

	// StrategySparse scores by TF-IDF vectors fitted jointly over the query
	// and every stored text on each call. Sparse vectors are corpus-relative
	// and never persisted.
	StrategySparse EmbeddingStrategy = "sparse"

	// StrategyLexical scores by word-overlap ratio between query and
	// document token sets. Dependency-free and never fails.
	StrategyLexical EmbeddingStrategy = "lexical"
)

// IsValid returns true if the strategy is recognised.
func (s EmbeddingStrategy) IsValid() bool {
	switch s {
	case StrategyDense, StrategySparse, StrategyLexical:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s EmbeddingStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s EmbeddingStrategy) Description() string {
	switch s {
	case StrategyDense:
		return "Dense (remote embedding model)"
	case StrategySparse:
		return "Sparse (corpus-relative TF-IDF)"
	case StrategyLexical:
		return "Lexical (word overlap)"
	default:
		return unknownDescription
	}
}

// AllEmbeddingStrategies returns every strategy, strongest first.
func AllEmbeddingStrategies() []EmbeddingStrategy {
	return []EmbeddingStrategy{
		StrategyDense,
		StrategySparse,
		StrategyLexical,
	}
}

// StrategyAvailability reports which strategies the running instance can
// serve. Sparse and lexical are computed locally and always available;
// dense requires a reachable embedding provider.
type StrategyAvailability struct {
	// Dense is true when an embedding provider was configured and answered
	// the construction-time ping.
	Dense bool

	// Sparse is true when TF-IDF scoring is available.
	Sparse bool

	// Lexical is true always; overlap scoring has no dependencies.
	Lexical bool
}
