package recall_test

import (
	"context"
	"testing"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/j4ckxyz/memory-node-mcp/pkg/repository/memory"
	"github.com/j4ckxyz/memory-node-mcp/pkg/service/recall"
	"github.com/m-mizutani/gt"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical direction scores 1", func(t *testing.T) {
		score := recall.CosineSimilarity([]float32{1, 0}, []float32{2, 0})
		gt.Value(t, score).Equal(1.0)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		score := recall.CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		gt.Value(t, score).Equal(0.0)
	})

	t.Run("zero vector scores 0 without fault", func(t *testing.T) {
		score := recall.CosineSimilarity([]float32{0, 0}, []float32{1, 1})
		gt.Value(t, score).Equal(0.0)
	})

	t.Run("mismatched lengths score 0", func(t *testing.T) {
		score := recall.CosineSimilarity([]float32{1, 0, 0}, []float32{1, 0})
		gt.Value(t, score).Equal(0.0)
	})
}

func TestSearchByVector(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, repo *memory.Memory, content string, vec []float32) *model.Memory {
		t.Helper()
		created, err := repo.Memory().Create(ctx, &model.Memory{
			Content: content,
			Type:    types.TypeConversation,
		})
		gt.NoError(t, err).Required()
		if vec != nil {
			gt.NoError(t, repo.Memory().SetEmbedding(ctx, created.ID, vec)).Required()
		}
		return created
	}

	t.Run("ranks by similarity descending", func(t *testing.T) {
		repo := memory.New()
		seed(t, repo, "orthogonal", []float32{0, 1})
		seed(t, repo, "exact", []float32{1, 0})
		seed(t, repo, "close", []float32{0.9, 0.1})

		hits, err := recall.SearchByVector(ctx, repo.Memory(), []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, hits).Length(3)
		gt.Value(t, hits[0].Memory.Content).Equal("exact")
		gt.Value(t, hits[1].Memory.Content).Equal("close")
		gt.Value(t, hits[2].Memory.Content).Equal("orthogonal")
		gt.Bool(t, hits[0].Score > hits[1].Score).True()
		gt.Bool(t, hits[1].Score > hits[2].Score).True()
	})

	t.Run("ties break toward newer memories", func(t *testing.T) {
		repo := memory.New()
		seed(t, repo, "older", []float32{1, 0})
		time.Sleep(5 * time.Millisecond)
		seed(t, repo, "newer", []float32{1, 0})

		hits, err := recall.SearchByVector(ctx, repo.Memory(), []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, hits).Length(2)
		gt.Value(t, hits[0].Memory.Content).Equal("newer")
		gt.Value(t, hits[1].Memory.Content).Equal("older")
	})

	t.Run("truncates to limit", func(t *testing.T) {
		repo := memory.New()
		for i := 0; i < 5; i++ {
			seed(t, repo, "memory", []float32{1, float32(i) * 0.1})
		}

		hits, err := recall.SearchByVector(ctx, repo.Memory(), []float32{1, 0}, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, hits).Length(2)
	})

	t.Run("skips memories without embeddings", func(t *testing.T) {
		repo := memory.New()
		seed(t, repo, "no vector", nil)
		seed(t, repo, "with vector", []float32{1, 0})

		hits, err := recall.SearchByVector(ctx, repo.Memory(), []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, hits).Length(1)
		gt.Value(t, hits[0].Memory.Content).Equal("with vector")
	})

	t.Run("empty store yields empty result", func(t *testing.T) {
		repo := memory.New()

		hits, err := recall.SearchByVector(ctx, repo.Memory(), []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, hits).Length(0)
	})
}
