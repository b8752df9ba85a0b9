package genai

import (
	"context"
	"strings"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// chunkDelimiter separates memory chunks in summarization prompts
const chunkDelimiter = "\n\n---\n\n"

const summarizePrompt = `You are a helpful assistant managing a long-term memory system. Summarize the following memory chunks into a single, dense paragraph. Preserve key facts, dates, and preferences. Discard redundant information.

`

const topicSummaryPrompt = `You are a helpful assistant managing a long-term memory system. Write a single paragraph describing the overall topics covered by the following memory chunks. Focus on recurring themes, stable facts, and preferences rather than individual events.

`

// Service implements interfaces.GenAI on top of a gollem LLM client. A nil
// client is a valid, expected configuration: every call then reports
// types.ErrGenAINotConfigured without any remote request.
type Service struct {
	llm       gollem.LLMClient
	dimension int
}

var _ interfaces.GenAI = &Service{}

type Option func(*Service)

// WithDimension overrides the embedding dimensionality. All records in one
// store must share a single dimensionality.
func WithDimension(dim int) Option {
	return func(s *Service) {
		s.dimension = dim
	}
}

func New(llm gollem.LLMClient, opts ...Option) *Service {
	s := &Service{
		llm:       llm,
		dimension: model.EmbeddingDimension,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Configured() bool {
	return s.llm != nil
}

func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if !s.Configured() {
		return nil, goerr.Wrap(types.ErrGenAINotConfigured, "skipping embedding")
	}

	embeddings, err := s.llm.GenerateEmbedding(ctx, s.dimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding")
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, goerr.New("embedding generation returned empty result")
	}

	embedding := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

func (s *Service) Summarize(ctx context.Context, chunks []string) (string, error) {
	return s.generate(ctx, summarizePrompt, chunks)
}

func (s *Service) TopicSummary(ctx context.Context, chunks []string) (string, error) {
	return s.generate(ctx, topicSummaryPrompt, chunks)
}

func (s *Service) generate(ctx context.Context, instruction string, chunks []string) (string, error) {
	if !s.Configured() {
		return "", goerr.Wrap(types.ErrGenAINotConfigured, "skipping summarization")
	}
	if len(chunks) == 0 {
		return "", goerr.New("no chunks to summarize")
	}

	session, err := s.llm.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create summarization session")
	}

	prompt := instruction + strings.Join(chunks, chunkDelimiter)
	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate summary")
	}
	if len(resp.Texts) == 0 || resp.Texts[0] == "" {
		return "", goerr.New("summary generation returned empty result")
	}

	return strings.TrimSpace(strings.Join(resp.Texts, "\n")), nil
}
