package cli

import (
	"context"

	mcpctrl "github.com/j4ckxyz/memory-node-mcp/pkg/controller/mcp"
	"github.com/j4ckxyz/memory-node-mcp/pkg/service/worker"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMCP() *cli.Command {
	var flags appFlags

	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the memory store over MCP stdio with background maintenance workers",
		Flags: flags.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, uc, schedule, err := flags.configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			maintWorker := worker.NewMaintenanceWorker(uc.Maintenance(), schedule.Interval)
			if err := maintWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start maintenance worker")
			}
			defer maintWorker.Stop()

			summaryWorker := worker.NewGlobalSummaryWorker(uc.Maintenance(), schedule.GlobalSummaryInterval)
			if err := summaryWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start global summary worker")
			}
			defer summaryWorker.Stop()

			// Blocks until the client disconnects or the context is cancelled
			return mcpctrl.New(uc, c.Root().Version).Run(ctx)
		},
	}
}
