package model

import (
	"maps"
	"strings"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
)

// EmbeddingDimension is the fixed dimensionality requested from the embedding
// backend. A single store must never mix dimensionalities, so this is a
// process-wide constant rather than per-record state.
const EmbeddingDimension = 768

// summaryContentPrefix marks content that is itself a summary artifact and
// therefore excluded from periodic summarization source material.
const summaryContentPrefix = "Summary:"

// Memory represents a stored memory entry: a short text fact, conversation
// snippet, or preference, optionally augmented with a vector embedding for
// semantic retrieval.
type Memory struct {
	ID        types.MemoryID
	Content   string
	Type      types.MemoryType
	CreatedAt time.Time
	Metadata  map[string]any

	// Embedding is either wholly absent (nil) or a complete vector. It is
	// cleared whenever Content changes.
	Embedding []float32
}

// HasEmbedding reports whether the memory carries a complete embedding vector
func (m *Memory) HasEmbedding() bool {
	return len(m.Embedding) > 0
}

// IsSummaryArtifact reports whether the memory is itself a summary artifact
// and must be excluded from periodic summarization source material.
func (m *Memory) IsSummaryArtifact() bool {
	return strings.HasPrefix(m.Content, summaryContentPrefix)
}

// Clone returns a deep copy of the memory
func (m *Memory) Clone() *Memory {
	copied := &Memory{
		ID:        m.ID,
		Content:   m.Content,
		Type:      m.Type,
		CreatedAt: m.CreatedAt,
	}
	if m.Metadata != nil {
		copied.Metadata = maps.Clone(m.Metadata)
	}
	if m.Embedding != nil {
		copied.Embedding = make([]float32, len(m.Embedding))
		copy(copied.Embedding, m.Embedding)
	}
	return copied
}
