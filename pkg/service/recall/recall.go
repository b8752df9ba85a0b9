package recall

import (
	"context"
	"math"
	"sort"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// SearchByVector loads every memory carrying an embedding and ranks them by
// cosine similarity to the query vector, descending, ties broken by recency
// (newest first) so results are deterministic. A store with no embedded
// memories yields an empty result, not an error. The linear scan is a
// deliberate choice for the target data volume (low tens of thousands).
func SearchByVector(ctx context.Context, repo interfaces.MemoryRepository, query []float32, limit int) ([]model.SearchHit, error) {
	embedded, err := repo.ListEmbedded(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load embedded memories")
	}

	hits := make([]model.SearchHit, 0, len(embedded))
	for _, m := range embedded {
		hits = append(hits, model.SearchHit{
			Memory: m,
			Score:  CosineSimilarity(query, m.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Memory.CreatedAt.After(hits[j].Memory.CreatedAt)
	})

	if limit < len(hits) {
		hits = hits[:limit]
	}

	return hits, nil
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths or a zero-magnitude vector yield 0 rather than a fault.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
