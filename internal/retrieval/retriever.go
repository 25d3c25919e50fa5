// Package retrieval ranks knowledge base chunks against a query vector by
// cosine similarity. A linear scan over every chunk vector is deliberate:
// knowledge bases here are small, per-session, and short-lived, so no index
// is built.
package retrieval

import (
	"math"
	"sort"

	"github.com/cloo-solutions/sitechat/internal/domain"
)

// DefaultK is the number of hits returned when the caller does not ask for
// a specific count.
const DefaultK = 5

// epsilon guards the cosine denominator against degenerate zero vectors.
const epsilon = 1e-12

// Hit is one ranked retrieval result.
type Hit struct {
	Score float64
	Chunk string
	URL   string
	Title string
}

// Cosine computes the cosine similarity of two vectors. Mismatched lengths
// score over the shorter prefix; zero vectors score zero.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + epsilon)
}

// TopK scores every chunk in the knowledge base against query and returns
// the min(k, total) best hits, descending by score. Ties keep encounter
// order. k <= 0 falls back to DefaultK.
func TopK(query []float32, kb *domain.KnowledgeBase, k int) []Hit {
	if k <= 0 {
		k = DefaultK
	}
	if kb == nil {
		return nil
	}

	var hits []Hit
	for _, doc := range kb.Documents {
		for i, vec := range doc.Vectors {
			if i >= len(doc.Chunks) {
				break
			}
			hits = append(hits, Hit{
				Score: Cosine(query, vec),
				Chunk: doc.Chunks[i].Text,
				URL:   doc.URL,
				Title: doc.Title,
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
