package usecase

import (
	"context"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/j4ckxyz/memory-node-mcp/pkg/service/recall"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Remember stores a new memory. The record is persisted without an embedding
// first, then one embedding attempt is made immediately; a failure is left for
// the backfill pipeline, so embeddings are never a hard dependency of writes.
func (uc *UseCases) Remember(ctx context.Context, content string, memType types.MemoryType, metadata map[string]any) (*model.Memory, error) {
	created, err := uc.repo.Memory().Create(ctx, &model.Memory{
		Content:  content,
		Type:     memType,
		Metadata: metadata,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store memory")
	}

	if embedding, err := uc.ai.Embed(ctx, created.Content); err != nil {
		logging.From(ctx).Warn("Failed to generate embedding for new memory, leaving for backfill",
			"id", created.ID, "error", err.Error())
	} else if err := uc.repo.Memory().SetEmbedding(ctx, created.ID, embedding); err != nil {
		logging.From(ctx).Warn("Failed to persist embedding for new memory",
			"id", created.ID, "error", err.Error())
	} else {
		created.Embedding = embedding
	}

	return created, nil
}

// ListRecent returns the most recent memories, newest first. The global
// summary singleton never appears here.
func (uc *UseCases) ListRecent(ctx context.Context, limit int) ([]*model.Memory, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return uc.repo.Memory().List(ctx, limit)
}

// ListAll returns every memory, oldest first
func (uc *UseCases) ListAll(ctx context.Context) ([]*model.Memory, error) {
	return uc.repo.Memory().ListAll(ctx)
}

// Search performs two-tier retrieval: semantic search when the query can be
// embedded, falling back to substring search when vector search yields nothing
// or the embedding function is unavailable. Embeddings are best effort and
// must never be a hard dependency for retrieval to function.
func (uc *UseCases) Search(ctx context.Context, query string, limit int) ([]model.SearchHit, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	if vector, err := uc.ai.Embed(ctx, query); err != nil {
		logging.From(ctx).Debug("Query embedding unavailable, using substring search",
			"error", err.Error())
	} else {
		hits, err := recall.SearchByVector(ctx, uc.repo.Memory(), vector, limit)
		if err != nil {
			return nil, goerr.Wrap(err, "vector search failed")
		}
		if len(hits) > 0 {
			return hits, nil
		}
	}

	memories, err := uc.repo.Memory().Search(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "substring search failed")
	}

	hits := make([]model.SearchHit, len(memories))
	for i, m := range memories {
		hits[i] = model.SearchHit{Memory: m}
	}
	return hits, nil
}

// Update replaces a memory's content and clears its embedding. Returns false
// when the memory does not exist.
func (uc *UseCases) Update(ctx context.Context, id types.MemoryID, content string) (bool, error) {
	return uc.repo.Memory().UpdateContent(ctx, id, content)
}

// Delete removes a memory. Returns false when it does not exist.
func (uc *UseCases) Delete(ctx context.Context, id types.MemoryID) (bool, error) {
	return uc.repo.Memory().Delete(ctx, id)
}

// RunMaintenance triggers the full maintenance sequence on demand, equivalent
// to the daily scheduled run.
func (uc *UseCases) RunMaintenance(ctx context.Context) model.MaintenanceReport {
	return uc.maint.RunMaintenance(ctx)
}

// RefreshGlobalSummary rebuilds the global topic summary on demand
func (uc *UseCases) RefreshGlobalSummary(ctx context.Context) error {
	return uc.maint.RefreshGlobalSummary(ctx)
}

// GlobalSummary returns the current global topic summary, or nil when none
// has been generated yet.
func (uc *UseCases) GlobalSummary(ctx context.Context) (*model.GlobalSummary, error) {
	return uc.repo.GlobalSummary().Get(ctx)
}
