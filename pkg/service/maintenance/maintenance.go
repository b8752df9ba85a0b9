package maintenance

// Policy tunes the maintenance pipeline. Zero values are replaced by the
// defaults below, which match the long-standing behavior of the store.
type Policy struct {
	// BatchSize bounds each embedding backfill batch
	BatchSize int

	// SummaryWindow is how many recent memories are inspected for periodic
	// summarization
	SummaryWindow int

	// SummaryThreshold is the minimum number of qualifying conversation
	// memories required before a periodic summary is created
	SummaryThreshold int

	// GlobalWindow bounds how many of the most recent memories feed the
	// global topic summary
	GlobalWindow int
}

// DefaultPolicy returns the default maintenance policy
func DefaultPolicy() Policy {
	return Policy{
		BatchSize:        20,
		SummaryWindow:    50,
		SummaryThreshold: 10,
		GlobalWindow:     100,
	}
}

func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.BatchSize <= 0 {
		p.BatchSize = def.BatchSize
	}
	if p.SummaryWindow <= 0 {
		p.SummaryWindow = def.SummaryWindow
	}
	if p.SummaryThreshold <= 0 {
		p.SummaryThreshold = def.SummaryThreshold
	}
	if p.GlobalWindow <= 0 {
		p.GlobalWindow = def.GlobalWindow
	}
	return p
}
