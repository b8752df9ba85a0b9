package model_test

import (
	"testing"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestIsSummaryArtifact(t *testing.T) {
	t.Run("prefix marks a summary artifact", func(t *testing.T) {
		m := &model.Memory{Content: "Summary: users mostly discussed deployments"}
		gt.Bool(t, m.IsSummaryArtifact()).True()
	})

	t.Run("prefix must be at the start", func(t *testing.T) {
		m := &model.Memory{Content: "See the earlier Summary: it covers this"}
		gt.Bool(t, m.IsSummaryArtifact()).False()
	})

	t.Run("ordinary content is not an artifact", func(t *testing.T) {
		m := &model.Memory{Content: "User prefers dark roast"}
		gt.Bool(t, m.IsSummaryArtifact()).False()
	})
}

func TestClone(t *testing.T) {
	orig := &model.Memory{
		ID:        types.NewMemoryID(),
		Content:   "original",
		Type:      types.TypeConversation,
		CreatedAt: time.Now().UTC(),
		Metadata:  map[string]any{"source": "test"},
		Embedding: []float32{0.1, 0.2},
	}

	copied := orig.Clone()
	copied.Metadata["source"] = "mutated"
	copied.Embedding[0] = 9

	gt.Value(t, orig.Metadata["source"]).Equal("test")
	gt.Value(t, orig.Embedding[0]).Equal(float32(0.1))
	gt.Value(t, copied.Content).Equal("original")
}

func TestHasEmbedding(t *testing.T) {
	gt.Bool(t, (&model.Memory{}).HasEmbedding()).False()
	gt.Bool(t, (&model.Memory{Embedding: []float32{1}}).HasEmbedding()).True()
}
