package domain

// QueryMatch is a single ranked similarity hit.
type QueryMatch struct {
	// DocumentID identifies the matched document.
	DocumentID string

	// Score is the similarity under the strategy that served the query.
	// Dense and sparse produce cosine similarity; lexical produces the
	// query-word overlap ratio. Scores are comparable within one query,
	// not across strategies.
	Score float64

	// Metadata is the document's stored metadata, returned for caller-side
	// filtering.
	Metadata map[string]any
}

// ContextEntry is a bounded context item handed to an agent.
// It carries handle fields plus the query score, never the full text.
type ContextEntry struct {
	// HandleID is the opaque handle to expand for full content.
	HandleID string

	// DocumentID identifies the underlying document.
	DocumentID string

	// Summary is the handle's bounded excerpt.
	Summary string

	// KeyPhrases are the handle's extracted terms.
	KeyPhrases []string

	// Importance is the handle's importance score.
	Importance float64

	// Score is the similarity score from the originating query.
	Score float64
}
