package config

import (
	"context"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/j4ckxyz/memory-node-mcp/pkg/repository/firestore"
	"github.com/j4ckxyz/memory-node-mcp/pkg/repository/memory"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend    string
	projectID  string
	databaseID string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore or memory)",
			Value:       "firestore",
			Sources:     cli.EnvVars("MEMNODE_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("MEMNODE_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("MEMNODE_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
	}
}

// Configure initializes and returns a repository based on the configured
// backend. The caller is responsible for calling Close().
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.From(ctx).Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case "memory":
		logging.From(ctx).Info("Using in-memory repository (development mode, data is not durable)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
