package interfaces

import "context"

// GenAI abstracts the remote embedding and summarization functions. Remote
// calls are best effort: missing configuration is an expected operating mode
// reported by Configured, and every method returns an ordinary error on remote
// failure so callers can skip, log, and continue.
type GenAI interface {
	// Configured reports whether a backend is available. When false, Embed and
	// the summarization methods fail with types.ErrGenAINotConfigured without
	// attempting any request.
	Configured() bool

	// Embed generates an embedding vector for the given text
	Embed(ctx context.Context, text string) ([]float32, error)

	// Summarize condenses the given text chunks into a single dense paragraph
	Summarize(ctx context.Context, chunks []string) (string, error)

	// TopicSummary produces a single-paragraph summary of the overall topics
	// covered by the given text chunks.
	TopicSummary(ctx context.Context, chunks []string) (string, error)
}
