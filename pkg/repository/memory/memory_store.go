package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// searchResultLimit caps substring search results
const searchResultLimit = 20

type memoryRepository struct {
	mu      sync.RWMutex
	entries map[types.MemoryID]*model.Memory
	// seq breaks CreatedAt ties so ordering stays deterministic even when
	// multiple entries share a timestamp
	seqs    map[types.MemoryID]uint64
	nextSeq uint64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		entries: make(map[types.MemoryID]*model.Memory),
		seqs:    make(map[types.MemoryID]uint64),
	}
}

func (r *memoryRepository) Create(ctx context.Context, mem *model.Memory) (*model.Memory, error) {
	if mem.Content == "" {
		return nil, goerr.Wrap(types.ErrEmptyContent, "failed to create memory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := mem.Clone()
	if created.ID == "" {
		created.ID = types.NewMemoryID()
	}
	if created.Type == "" {
		created.Type = types.TypeConversation
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	created.Embedding = nil

	r.entries[created.ID] = created
	r.seqs[created.ID] = r.nextSeq
	r.nextSeq++

	return created.Clone(), nil
}

func (r *memoryRepository) Get(ctx context.Context, id types.MemoryID) (*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mem, exists := r.entries[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrMemoryNotFound, "failed to get memory", goerr.V("id", id))
	}

	return mem.Clone(), nil
}

// sorted returns all entries ordered by creation time. newestFirst selects the
// direction; insertion sequence breaks timestamp ties.
func (r *memoryRepository) sorted(newestFirst bool) []*model.Memory {
	result := make([]*model.Memory, 0, len(r.entries))
	for _, m := range r.entries {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if newestFirst {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if newestFirst {
			return r.seqs[a.ID] > r.seqs[b.ID]
		}
		return r.seqs[a.ID] < r.seqs[b.ID]
	})

	return result
}

func (r *memoryRepository) List(ctx context.Context, limit int) ([]*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Memory, 0, limit)
	for _, m := range r.sorted(true) {
		if len(result) >= limit {
			break
		}
		result = append(result, m.Clone())
	}

	return result, nil
}

func (r *memoryRepository) ListAll(ctx context.Context) ([]*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := r.sorted(false)
	result := make([]*model.Memory, len(sorted))
	for i, m := range sorted {
		result[i] = m.Clone()
	}

	return result, nil
}

func (r *memoryRepository) ListMissingEmbedding(ctx context.Context, limit int) ([]*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Memory, 0, limit)
	for _, m := range r.sorted(true) {
		if m.HasEmbedding() || m.Type == types.TypeSummary {
			continue
		}
		if len(result) >= limit {
			break
		}
		result = append(result, m.Clone())
	}

	return result, nil
}

func (r *memoryRepository) ListEmbedded(ctx context.Context) ([]*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Memory
	for _, m := range r.sorted(true) {
		if m.HasEmbedding() {
			result = append(result, m.Clone())
		}
	}

	return result, nil
}

func (r *memoryRepository) SetEmbedding(ctx context.Context, id types.MemoryID, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mem, exists := r.entries[id]
	if !exists {
		// The memory may have been deleted while the embedding request was in
		// flight. That is expected, not an error.
		return nil
	}

	mem.Embedding = make([]float32, len(embedding))
	copy(mem.Embedding, embedding)
	return nil
}

func (r *memoryRepository) UpdateContent(ctx context.Context, id types.MemoryID, content string) (bool, error) {
	if content == "" {
		return false, goerr.Wrap(types.ErrEmptyContent, "failed to update memory", goerr.V("id", id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	mem, exists := r.entries[id]
	if !exists {
		return false, nil
	}

	mem.Content = content
	mem.Embedding = nil
	return true, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id types.MemoryID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		return false, nil
	}

	delete(r.entries, id)
	delete(r.seqs, id)
	return true, nil
}

func (r *memoryRepository) Search(ctx context.Context, query string) ([]*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)

	result := make([]*model.Memory, 0, searchResultLimit)
	for _, m := range r.sorted(true) {
		if !strings.Contains(strings.ToLower(m.Content), needle) {
			continue
		}
		result = append(result, m.Clone())
		if len(result) >= searchResultLimit {
			break
		}
	}

	return result, nil
}
