package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMaintain() *cli.Command {
	var flags appFlags
	var refreshGlobal bool

	cmdFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "global-summary",
			Usage:       "Also refresh the global topic summary",
			Destination: &refreshGlobal,
		},
	}
	cmdFlags = append(cmdFlags, flags.flags()...)

	return &cli.Command{
		Name:  "maintain",
		Usage: "Run the maintenance pipeline once and exit",
		Flags: cmdFlags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, uc, _, err := flags.configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			report := uc.RunMaintenance(ctx)

			if refreshGlobal {
				if err := uc.RefreshGlobalSummary(ctx); err != nil {
					return goerr.Wrap(err, "failed to refresh global summary")
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return goerr.Wrap(err, "failed to render maintenance report")
			}

			if report.Backfill.Status != model.BackfillCompleted {
				fmt.Fprintln(os.Stderr, "maintenance finished with incomplete backfill; check logs")
			}
			return nil
		},
	}
}
