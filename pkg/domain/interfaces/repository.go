package interfaces

import (
	"context"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
)

// Repository aggregates all persistence interfaces. It is opened once at
// startup and lives for the process lifetime.
type Repository interface {
	Memory() MemoryRepository
	GlobalSummary() GlobalSummaryRepository
	Close() error
}

// MemoryRepository defines persistence for memory entries. The global summary
// singleton lives in GlobalSummaryRepository and never appears in any listing
// or search result here.
type MemoryRepository interface {
	// Create persists a new memory. It assigns ID and CreatedAt when unset and
	// rejects empty content. The created memory carries no embedding.
	Create(ctx context.Context, mem *model.Memory) (*model.Memory, error)

	// Get retrieves a memory by ID. Returns types.ErrMemoryNotFound when absent.
	Get(ctx context.Context, id types.MemoryID) (*model.Memory, error)

	// List returns up to limit memories, newest first
	List(ctx context.Context, limit int) ([]*model.Memory, error)

	// ListAll returns every memory, oldest first
	ListAll(ctx context.Context) ([]*model.Memory, error)

	// ListMissingEmbedding returns up to limit memories lacking an embedding,
	// newest first, excluding types that must never be embedded.
	ListMissingEmbedding(ctx context.Context, limit int) ([]*model.Memory, error)

	// ListEmbedded returns every memory carrying an embedding
	ListEmbedded(ctx context.Context) ([]*model.Memory, error)

	// SetEmbedding overwrites the embedding of the given memory. It is a
	// silent no-op when the memory no longer exists, so a delete racing an
	// in-flight embedding request never surfaces an error.
	SetEmbedding(ctx context.Context, id types.MemoryID, embedding []float32) error

	// UpdateContent replaces the content and clears the embedding. Returns
	// false when the memory does not exist.
	UpdateContent(ctx context.Context, id types.MemoryID, content string) (bool, error)

	// Delete removes the memory. Returns false when it does not exist.
	Delete(ctx context.Context, id types.MemoryID) (bool, error)

	// Search performs a case-insensitive substring match over content,
	// newest first, capped at a fixed default.
	Search(ctx context.Context, query string) ([]*model.Memory, error)
}

// GlobalSummaryRepository defines the singleton accessor for the rolling
// global topic summary.
type GlobalSummaryRepository interface {
	// Get returns the current global summary, or nil when none exists
	Get(ctx context.Context) (*model.GlobalSummary, error)

	// Save overwrites the global summary with the given text
	Save(ctx context.Context, content string) error
}
