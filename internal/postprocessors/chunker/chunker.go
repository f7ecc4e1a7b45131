// Package chunker provides a word-boundary text splitter for ingestion.
package chunker

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Ensure Splitter implements the interface.
var _ driven.Chunker = (*Splitter)(nil)

// Splitter breaks text into chunks of roughly chunkSize characters,
// preferring word boundaries so no chunk starts or ends mid-word.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between neighbouring chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave room for the window to advance.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Size returns the configured chunk size in characters.
func (s *Splitter) Size() int {
	return s.chunkSize
}

// Split breaks text into chunks. Boundaries snap back to the nearest
// whitespace so words are never cut; a single unbroken token longer than
// the chunk size is split mid-token rather than looping.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	step := s.chunkSize - s.overlap
	chunks := make([]string, 0, len(text)/step+1)

	start := 0
	for start < len(text) {
		end := start + s.chunkSize
		if end >= len(text) {
			chunks = append(chunks, strings.TrimSpace(text[start:]))
			break
		}

		end = snapToBoundary(text, start, end)
		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := snapToWordStart(text, end-s.overlap, end)
		if next <= start {
			next = start + step
		}
		start = next
	}

	return chunks
}

// snapToBoundary moves end left to the last whitespace run in
// text[start:end]. If the window holds a single unbroken token the
// original end stands.
func snapToBoundary(text string, start, end int) int {
	for i := end; i > start; i-- {
		if unicode.IsSpace(rune(text[i-1])) {
			// Keep at least half a window so pathological input
			// cannot stall progress.
			if i-start >= (end-start)/2 {
				return i
			}
			break
		}
	}
	return end
}

// snapToWordStart moves pos right until it sits at the start of a word,
// so the overlap region never opens mid-word. Gives up at limit.
func snapToWordStart(text string, pos, limit int) int {
	if pos <= 0 {
		return 0
	}
	for pos < limit && !unicode.IsSpace(rune(text[pos-1])) {
		pos++
	}
	return pos
}
