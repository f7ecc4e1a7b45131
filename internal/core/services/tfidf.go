package services

import (
	"math"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// Sparse scoring is corpus relative: term weights derive from document
// frequencies across the query plus every stored text, so vectors are
// fitted fresh on each call and never persisted.

type sparseVector map[string]float64

// rankSparse scores documents by cosine similarity between TF-IDF
// vectors fitted jointly over the query and all document texts.
func rankSparse(query string, docs []domain.Document) []domain.QueryMatch {
	corpus := make([][]string, 0, len(docs)+1)
	corpus = append(corpus, domain.Tokenize(query))
	for i := range docs {
		corpus = append(corpus, domain.Tokenize(docs[i].Text))
	}

	vectors := fitTFIDF(corpus)
	queryVector := vectors[0]

	matches := make([]domain.QueryMatch, 0, len(docs))
	for i := range docs {
		matches = append(matches, domain.QueryMatch{
			DocumentID: docs[i].ID,
			Score:      cosineSparse(queryVector, vectors[i+1]),
			Metadata:   docs[i].Metadata,
		})
	}
	return matches
}

// fitTFIDF computes one L2-normalised TF-IDF vector per tokenised text.
// IDF uses the smoothed form ln((n+1)/(df+1))+1 so terms appearing in
// every text keep a small positive weight instead of vanishing.
func fitTFIDF(corpus [][]string) []sparseVector {
	n := float64(len(corpus))

	df := make(map[string]float64)
	for _, tokens := range corpus {
		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			df[token]++
		}
	}

	vectors := make([]sparseVector, len(corpus))
	for i, tokens := range corpus {
		vector := make(sparseVector, len(tokens))
		vectors[i] = vector
		if len(tokens) == 0 {
			continue
		}
		for _, token := range tokens {
			vector[token] += 1.0 / float64(len(tokens))
		}
		for token := range vector {
			vector[token] *= math.Log((n+1)/(df[token]+1)) + 1
		}
		normalise(vector)
	}
	return vectors
}

func normalise(vector sparseVector) {
	var sum float64
	for _, weight := range vector {
		sum += weight * weight
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for token := range vector {
		vector[token] /= norm
	}
}

// cosineSparse is the dot product of two L2-normalised sparse vectors,
// iterating the smaller one.
func cosineSparse(a, b sparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for token, weight := range a {
		if other, ok := b[token]; ok {
			dot += weight * other
		}
	}
	return dot
}
