package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bounds on what a context handle exposes.
const (
	// SummaryMaxLen is the summary length cap in runes.
	SummaryMaxLen = 200

	// MaxKeyPhrases caps how many key phrases a handle carries.
	MaxKeyPhrases = 5

	// importanceSaturation is the text length (in runes) at which the
	// importance score reaches 1.0.
	importanceSaturation = 1000
)

// stopwords are skipped during key-phrase extraction.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "not": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "this": {}, "to": {}, "was": {}, "were": {}, "will": {},
	"with": {}, "you": {}, "your": {},
}

// TextHash returns the SHA-256 hex fingerprint of text.
// It is the deduplication key: two documents with equal hashes are the
// same content regardless of their IDs.
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first 12 hex characters of TextHash, used when
// synthesising document IDs from content.
func ShortHash(text string) string {
	return TextHash(text)[:12]
}

// Tokenize lowercases text and splits it into words on any
// non-alphanumeric rune. Both the lexical scorer and the key-phrase
// extractor share this tokenisation.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Summarize returns the first SummaryMaxLen runes of text.
// Handles store this excerpt instead of the full content.
func Summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= SummaryMaxLen {
		return text
	}
	return string(runes[:SummaryMaxLen])
}

// ImportanceScore maps content length to [0,1]. Longer content scores
// higher, saturating at importanceSaturation runes.
func ImportanceScore(text string) float64 {
	score := float64(utf8.RuneCountInString(text)) / importanceSaturation
	if score > 1.0 {
		return 1.0
	}
	return score
}

// KeyPhrases extracts up to MaxKeyPhrases frequent terms and bigrams from
// text. Stopwords and tokens shorter than three runes are ignored, and a
// stopword breaks bigram adjacency. Ranking is deterministic: frequency
// descending, then first occurrence ascending, then extraction order.
func KeyPhrases(text string) []string {
	tokens := Tokenize(text)

	type candidate struct {
		phrase string
		count  int
		first  int
	}
	index := make(map[string]*candidate)
	var ordered []*candidate
	record := func(phrase string, pos int) {
		if c, ok := index[phrase]; ok {
			c.count++
			return
		}
		c := &candidate{phrase: phrase, count: 1, first: pos}
		index[phrase] = c
		ordered = append(ordered, c)
	}

	prev := ""
	for i, tok := range tokens {
		if _, stop := stopwords[tok]; stop || utf8.RuneCountInString(tok) < 3 {
			prev = ""
			continue
		}
		record(tok, i)
		if prev != "" {
			record(prev+" "+tok, i-1)
		}
		prev = tok
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].first < ordered[j].first
	})

	limit := MaxKeyPhrases
	if len(ordered) < limit {
		limit = len(ordered)
	}
	phrases := make([]string, 0, limit)
	for _, c := range ordered[:limit] {
		phrases = append(phrases, c.phrase)
	}
	return phrases
}
