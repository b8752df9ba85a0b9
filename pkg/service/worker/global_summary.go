package worker

import (
	"context"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/service/maintenance"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
)

// GlobalSummaryWorker refreshes the rolling global topic summary on a fixed
// interval, independently of the maintenance worker.
type GlobalSummaryWorker struct {
	svc      *maintenance.Service
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewGlobalSummaryWorker creates a worker refreshing the global summary every
// interval
func NewGlobalSummaryWorker(svc *maintenance.Service, interval time.Duration) *GlobalSummaryWorker {
	return &GlobalSummaryWorker{
		svc:      svc,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop. It does not block startup.
func (w *GlobalSummaryWorker) Start(ctx context.Context) error {
	logging.From(ctx).Info("Global summary worker starting", "interval", w.interval.String())
	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *GlobalSummaryWorker) Stop() {
	logging.Default().Info("Global summary worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Global summary worker stopped")
}

func (w *GlobalSummaryWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Failure leaves the previous summary untouched; retry next tick
			if err := w.svc.RefreshGlobalSummary(ctx); err != nil {
				logging.From(ctx).Warn("Global summary refresh failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.From(ctx).Info("Global summary worker received stop signal")
			return

		case <-ctx.Done():
			logging.From(ctx).Info("Global summary worker context cancelled")
			return
		}
	}
}
