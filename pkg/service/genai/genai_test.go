package genai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/j4ckxyz/memory-node-mcp/pkg/service/genai"
	"github.com/m-mizutani/gt"
)

func TestUnconfiguredService(t *testing.T) {
	ctx := context.Background()
	svc := genai.New(nil)

	gt.Bool(t, svc.Configured()).False()

	t.Run("embed reports not configured", func(t *testing.T) {
		_, err := svc.Embed(ctx, "anything")
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrGenAINotConfigured)).True()
	})

	t.Run("summarize reports not configured", func(t *testing.T) {
		_, err := svc.Summarize(ctx, []string{"chunk"})
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrGenAINotConfigured)).True()
	})

	t.Run("topic summary reports not configured", func(t *testing.T) {
		_, err := svc.TopicSummary(ctx, []string{"chunk"})
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrGenAINotConfigured)).True()
	})
}
