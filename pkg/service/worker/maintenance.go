package worker

import (
	"context"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/service/maintenance"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
)

// MaintenanceWorker runs the full maintenance sequence (embedding backfill
// then periodic summarization) on a fixed interval.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - Scheduling state is process-lifetime only: no persisted schedule, no
//   catch-up for runs missed across restarts
type MaintenanceWorker struct {
	svc      *maintenance.Service
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewMaintenanceWorker creates a worker running maintenance every interval
func NewMaintenanceWorker(svc *maintenance.Service, interval time.Duration) *MaintenanceWorker {
	return &MaintenanceWorker{
		svc:      svc,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background maintenance loop. It does not block startup.
func (w *MaintenanceWorker) Start(ctx context.Context) error {
	logging.From(ctx).Info("Maintenance worker starting", "interval", w.interval.String())
	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *MaintenanceWorker) Stop() {
	logging.Default().Info("Maintenance worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Maintenance worker stopped")
}

func (w *MaintenanceWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// RunMaintenance reports failures through its result; it never
			// returns an error that should stop the loop
			report := w.svc.RunMaintenance(ctx)
			logging.From(ctx).Info("Scheduled maintenance finished",
				"backfill_status", report.Backfill.Status,
				"processed", report.Backfill.Processed,
				"summary_created", report.Summary.Created,
			)

		case <-w.stopCh:
			logging.From(ctx).Info("Maintenance worker received stop signal")
			return

		case <-ctx.Done():
			logging.From(ctx).Info("Maintenance worker context cancelled")
			return
		}
	}
}
