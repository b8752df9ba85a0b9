package memory

import (
	"context"
	"sync"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
)

type globalSummaryRepository struct {
	mu      sync.RWMutex
	current *model.GlobalSummary
}

func newGlobalSummaryRepository() *globalSummaryRepository {
	return &globalSummaryRepository{}
}

func (r *globalSummaryRepository) Get(ctx context.Context) (*model.GlobalSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return nil, nil
	}

	copied := *r.current
	return &copied, nil
}

func (r *globalSummaryRepository) Save(ctx context.Context, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = &model.GlobalSummary{
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}
