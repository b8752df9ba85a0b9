package config

import (
	"context"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/j4ckxyz/memory-node-mcp/pkg/service/genai"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// GenAI holds CLI flags for the embedding/summarization backend. Running with
// no backend at all is a supported mode: the store keeps working and every
// remote-dependent feature degrades to a reported no-op.
type GenAI struct {
	backend        string
	openaiAPIKey   string
	geminiProject  string
	geminiLocation string
}

// Flags returns CLI flags for generative AI configuration
func (g *GenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "genai-backend",
			Usage:       "Generative AI backend (auto, openai, gemini, none)",
			Value:       "auto",
			Sources:     cli.EnvVars("MEMNODE_GENAI_BACKEND"),
			Destination: &g.backend,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key for embeddings and summarization",
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
			Destination: &g.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("MEMNODE_GEMINI_PROJECT"),
			Destination: &g.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("MEMNODE_GEMINI_LOCATION"),
			Destination: &g.geminiLocation,
		},
	}
}

// Configure creates the GenAI service. A missing API key is not an error:
// the returned service reports Configured() == false and the store runs in
// degraded mode.
func (g *GenAI) Configure(ctx context.Context) (interfaces.GenAI, error) {
	llm, err := g.newClient(ctx)
	if err != nil {
		return nil, err
	}

	if llm == nil {
		logging.From(ctx).Warn("No generative AI backend configured; embeddings and summaries are disabled")
	}

	return genai.New(llm), nil
}

func (g *GenAI) newClient(ctx context.Context) (gollem.LLMClient, error) {
	backend := g.backend
	if backend == "auto" {
		switch {
		case g.openaiAPIKey != "":
			backend = "openai"
		case g.geminiProject != "":
			backend = "gemini"
		default:
			backend = "none"
		}
	}

	switch backend {
	case "openai":
		if g.openaiAPIKey == "" {
			return nil, goerr.New("openai-api-key is required for the openai backend")
		}
		client, err := openai.New(ctx, g.openaiAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		logging.From(ctx).Info("Using OpenAI backend for embeddings and summarization")
		return client, nil

	case "gemini":
		if g.geminiProject == "" {
			return nil, goerr.New("gemini-project is required for the gemini backend")
		}
		client, err := gemini.New(ctx, g.geminiProject, g.geminiLocation)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		logging.From(ctx).Info("Using Gemini backend for embeddings and summarization",
			"project", g.geminiProject, "location", g.geminiLocation)
		return client, nil

	case "none":
		return nil, nil

	default:
		return nil, goerr.New("invalid genai backend", goerr.V("backend", g.backend))
	}
}
