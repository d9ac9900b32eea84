// Package vectorindex provides an in-memory exact similarity index over
// L2-normalized vectors. Inner product of unit vectors equals cosine
// similarity, so Search returns cosine scores without extra normalization.
package vectorindex

import (
	"sort"

	"chatassist/internal/domain"
)

// Flat is a brute-force index: every query computes the dot product against
// each stored vector. Corpora are single small documents, so O(n*d) per query
// is acceptable and exactness is part of the contract.
type Flat struct {
	vectors [][]float64
}

// Build creates an index over the given vectors, keyed by position. An empty
// vector set has no index; Build returns nil as the "no index" sentinel.
func Build(vectors [][]float64) *Flat {
	if len(vectors) == 0 {
		return nil
	}
	return &Flat{vectors: vectors}
}

// Size returns the number of indexed vectors.
func (f *Flat) Size() int { return len(f.vectors) }

// Search returns up to k hits sorted by descending similarity, ties broken by
// lower chunk id. The query vector must be L2-normalized by the caller.
func (f *Flat) Search(query []float64, k int) []domain.QueryHit {
	if k <= 0 || len(f.vectors) == 0 {
		return nil
	}
	hits := make([]domain.QueryHit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = domain.QueryHit{ChunkID: i, Score: dot(v, query)}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k]
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
