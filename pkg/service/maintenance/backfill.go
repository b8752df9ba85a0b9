package maintenance

import (
	"context"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
)

// Service runs the store maintenance pipeline: embedding backfill, periodic
// summarization, and global summary refresh. Remote failures degrade to
// reported no-ops; nothing here may take down the host process.
type Service struct {
	repo   interfaces.Repository
	ai     interfaces.GenAI
	policy Policy
}

func New(repo interfaces.Repository, ai interfaces.GenAI, policy Policy) *Service {
	return &Service{
		repo:   repo,
		ai:     ai,
		policy: policy.withDefaults(),
	}
}

// Backfill makes stored embeddings eventually consistent with content. It
// fetches bounded batches of memories lacking embeddings and requests one
// embedding per record. A record that fails is skipped; a batch where every
// record fails aborts the run, so the loop terminates even when the remote
// function is persistently unavailable.
func (s *Service) Backfill(ctx context.Context) model.BackfillReport {
	logger := logging.From(ctx)

	if !s.ai.Configured() {
		logger.Warn("Skipping embedding backfill: generative AI is not configured")
		return model.BackfillReport{Status: model.BackfillConfigError}
	}

	report := model.BackfillReport{Status: model.BackfillCompleted}

	for {
		missing, err := s.repo.Memory().ListMissingEmbedding(ctx, s.policy.BatchSize)
		if err != nil {
			logger.Error("Failed to list memories without embeddings", "error", err.Error())
			report.Status = model.BackfillPartial
			return report
		}
		if len(missing) == 0 {
			break
		}

		report.Batches++
		logger.Info("Backfilling embeddings", "batch", report.Batches, "count", len(missing))

		batchSuccess := 0
		for _, mem := range missing {
			embedding, err := s.ai.Embed(ctx, mem.Content)
			if err != nil {
				logger.Warn("Failed to generate embedding, skipping record",
					"id", mem.ID, "error", err.Error())
				continue
			}

			// A concurrent delete makes this a no-op, which is fine
			if err := s.repo.Memory().SetEmbedding(ctx, mem.ID, embedding); err != nil {
				logger.Warn("Failed to persist embedding, skipping record",
					"id", mem.ID, "error", err.Error())
				continue
			}

			report.Processed++
			batchSuccess++
		}

		// Zero progress in a full batch means a systemic failure such as
		// expired credentials. Abort instead of reprocessing the same
		// always-failing records forever.
		if batchSuccess == 0 {
			logger.Error("No embeddings generated in batch, aborting backfill",
				"processed", report.Processed)
			report.Status = model.BackfillPartial
			return report
		}
	}

	logger.Info("Embedding backfill complete", "processed", report.Processed, "batches", report.Batches)
	return report
}

// RunMaintenance executes the full maintenance sequence: embedding backfill
// followed by periodic summarization.
func (s *Service) RunMaintenance(ctx context.Context) model.MaintenanceReport {
	logger := logging.From(ctx)
	logger.Info("Starting maintenance run")

	report := model.MaintenanceReport{
		Backfill: s.Backfill(ctx),
		Summary:  s.SummarizeRecent(ctx),
	}

	logger.Info("Maintenance run completed",
		"backfill_status", report.Backfill.Status,
		"backfill_processed", report.Backfill.Processed,
		"summary_created", report.Summary.Created,
	)
	return report
}
