package model

import "time"

// GlobalSummary is the rolling singleton record summarizing the overall
// topical content of the store. It is replaced, never appended, on refresh.
type GlobalSummary struct {
	Content   string
	UpdatedAt time.Time
}
