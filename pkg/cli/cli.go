package cli

import (
	"context"

	"github.com/j4ckxyz/memory-node-mcp/pkg/cli/config"
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
	"github.com/j4ckxyz/memory-node-mcp/pkg/usecase"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger

	app := &cli.Command{
		Name:    "memnode",
		Usage:   "Durable memory store with semantic retrieval and background maintenance",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger := loggerCfg.Configure()
			return logging.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdMCP(),
			cmdMaintain(),
			cmdRemember(),
			cmdSearch(),
			cmdList(),
			cmdSummary(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

// appFlags bundles the config structs shared by every command that touches
// the store
type appFlags struct {
	repo  config.Repository
	genAI config.GenAI
	maint config.Maintenance
}

func (f *appFlags) flags() []cli.Flag {
	flags := f.repo.Flags()
	flags = append(flags, f.genAI.Flags()...)
	flags = append(flags, f.maint.Flags()...)
	return flags
}

// configure builds the repository, GenAI service and use cases. The caller
// owns the returned repository and must Close it.
func (f *appFlags) configure(ctx context.Context) (interfaces.Repository, *usecase.UseCases, *config.MaintenanceSchedule, error) {
	schedule, err := f.maint.Configure()
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to load maintenance policy")
	}

	repo, err := f.repo.Configure(ctx)
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}

	ai, err := f.genAI.Configure(ctx)
	if err != nil {
		if closeErr := repo.Close(); closeErr != nil {
			logging.From(ctx).Error("failed to close repository", "error", closeErr.Error())
		}
		return nil, nil, nil, goerr.Wrap(err, "failed to configure generative AI backend")
	}

	uc := usecase.NewWithPolicy(repo, ai, schedule.Policy)
	return repo, uc, schedule, nil
}
