package services

import (
	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// rankLexical scores documents by word overlap with the query. It is
// the floor strategy: deterministic, dependency free and never failing.
func rankLexical(query string, docs []domain.Document) []domain.QueryMatch {
	queryWords := tokenSet(query)
	matches := make([]domain.QueryMatch, 0, len(docs))
	for i := range docs {
		matches = append(matches, domain.QueryMatch{
			DocumentID: docs[i].ID,
			Score:      overlapScore(queryWords, tokenSet(docs[i].Text)),
			Metadata:   docs[i].Metadata,
		})
	}
	return matches
}

// overlapScore is |query ∩ doc| / |query| over distinct lowercase
// words. An empty query scores 0 against everything.
func overlapScore(queryWords, docWords map[string]struct{}) float64 {
	if len(queryWords) == 0 {
		return 0
	}
	var shared int
	for word := range queryWords {
		if _, ok := docWords[word]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(queryWords))
}

func tokenSet(text string) map[string]struct{} {
	tokens := domain.Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
