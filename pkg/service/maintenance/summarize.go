package maintenance

import (
	"context"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// SummarizeRecent condenses recent raw conversation memories into a new
// periodic_summary record. Summaries are additive: source records are never
// deleted. Insufficient material and remote unavailability are both reported
// no-ops, not errors.
func (s *Service) SummarizeRecent(ctx context.Context) model.SummaryReport {
	logger := logging.From(ctx)

	recent, err := s.repo.Memory().List(ctx, s.policy.SummaryWindow)
	if err != nil {
		logger.Error("Failed to list recent memories for summarization", "error", err.Error())
		return model.SummaryReport{SkipReason: "failed to list recent memories"}
	}

	var conversations []*model.Memory
	for _, m := range recent {
		if m.Type == types.TypeConversation && !m.IsSummaryArtifact() {
			conversations = append(conversations, m)
		}
	}

	if len(conversations) < s.policy.SummaryThreshold {
		logger.Info("Not enough recent conversations to summarize",
			"count", len(conversations), "threshold", s.policy.SummaryThreshold)
		return model.SummaryReport{SkipReason: "insufficient material"}
	}

	chunks := make([]string, len(conversations))
	for i, m := range conversations {
		chunks[i] = m.Content
	}

	summary, err := s.ai.Summarize(ctx, chunks)
	if err != nil {
		logger.Warn("Failed to summarize recent conversations", "error", err.Error())
		return model.SummaryReport{SkipReason: "summarization unavailable"}
	}

	created, err := s.repo.Memory().Create(ctx, &model.Memory{
		Content: summary,
		Type:    types.TypePeriodicSummary,
		Metadata: map[string]any{
			"source_count": len(conversations),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		logger.Error("Failed to store periodic summary", "error", err.Error())
		return model.SummaryReport{SkipReason: "failed to store summary"}
	}

	logger.Info("Created periodic summary", "id", created.ID, "source_count", len(conversations))
	return model.SummaryReport{Created: true, SourceCount: len(conversations)}
}

// RefreshGlobalSummary rebuilds the rolling global topic summary from a
// bounded window of the most recent memories and overwrites the singleton.
// On any failure the existing summary is left untouched.
func (s *Service) RefreshGlobalSummary(ctx context.Context) error {
	logger := logging.From(ctx)

	all, err := s.repo.Memory().ListAll(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list memories for global summary")
	}
	if len(all) == 0 {
		logger.Info("No memories to build a global summary from")
		return nil
	}

	// ListAll is oldest-first; keep only the most recent window
	if len(all) > s.policy.GlobalWindow {
		all = all[len(all)-s.policy.GlobalWindow:]
	}

	chunks := make([]string, len(all))
	for i, m := range all {
		chunks[i] = m.Content
	}

	summary, err := s.ai.TopicSummary(ctx, chunks)
	if err != nil {
		return goerr.Wrap(err, "failed to generate global summary")
	}

	if err := s.repo.GlobalSummary().Save(ctx, summary); err != nil {
		return goerr.Wrap(err, "failed to save global summary")
	}

	logger.Info("Refreshed global summary", "source_count", len(chunks))
	return nil
}
