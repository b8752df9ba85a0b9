package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrEmptyContent is returned when a memory is created or updated with empty content
	ErrEmptyContent = goerr.New("memory content must not be empty")

	// ErrMemoryNotFound is returned by Get when no memory exists for the given ID
	ErrMemoryNotFound = goerr.New("memory not found")

	// ErrGenAINotConfigured is returned by GenAI operations when no backend is configured
	ErrGenAINotConfigured = goerr.New("generative AI client is not configured")
)
