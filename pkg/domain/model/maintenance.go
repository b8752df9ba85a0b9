package model

// BackfillStatus is the terminal status of an embedding backfill run
type BackfillStatus string

const (
	// BackfillCompleted means every record lacking an embedding was processed
	BackfillCompleted BackfillStatus = "completed"

	// BackfillPartial means the run aborted after a batch made zero progress,
	// treated as a systemic remote failure (e.g. expired credentials)
	BackfillPartial BackfillStatus = "partial"

	// BackfillConfigError means the embedding backend is not configured and
	// no requests were attempted
	BackfillConfigError BackfillStatus = "config_error"
)

// BackfillReport describes the outcome of an embedding backfill run
type BackfillReport struct {
	Status    BackfillStatus `json:"status"`
	Processed int            `json:"processed"`
	Batches   int            `json:"batches"`
}

// SummaryReport describes the outcome of a periodic summarization run
type SummaryReport struct {
	Created     bool   `json:"created"`
	SourceCount int    `json:"source_count"`
	SkipReason  string `json:"skip_reason,omitempty"`
}

// MaintenanceReport aggregates the outcome of a full maintenance run
// (backfill followed by periodic summarization)
type MaintenanceReport struct {
	Backfill BackfillReport `json:"backfill"`
	Summary  SummaryReport  `json:"summary"`
}
