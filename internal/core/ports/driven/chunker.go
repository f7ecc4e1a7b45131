package driven

// Chunker splits long text into bounded pieces before storage.
// Implementations break on word boundaries where possible so chunks stay
// readable and embed cleanly.
type Chunker interface {
	// Split breaks text into chunks. Text at or under the chunk size
	// comes back as a single element. Empty text yields nil.
	Split(text string) []string

	// Size returns the configured chunk size in characters.
	Size() int
}
