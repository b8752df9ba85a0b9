package model

// SearchHit is a single similarity search result. Score is the cosine
// similarity to the query vector, or 0 for substring fallback results.
type SearchHit struct {
	Memory *Memory
	Score  float64
}
