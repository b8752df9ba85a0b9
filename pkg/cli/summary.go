package cli

import (
	"context"
	"fmt"

	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSummary() *cli.Command {
	var flags appFlags
	var refresh bool

	cmdFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "refresh",
			Usage:       "Rebuild the global summary before showing it",
			Destination: &refresh,
		},
	}
	cmdFlags = append(cmdFlags, flags.flags()...)

	return &cli.Command{
		Name:  "summary",
		Usage: "Show the rolling global topic summary",
		Flags: cmdFlags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, uc, _, err := flags.configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			if refresh {
				if err := uc.RefreshGlobalSummary(ctx); err != nil {
					return goerr.Wrap(err, "failed to refresh global summary")
				}
			}

			summary, err := uc.GlobalSummary(ctx)
			if err != nil {
				return err
			}
			if summary == nil {
				fmt.Println("No global summary has been generated yet.")
				return nil
			}

			fmt.Printf("Updated: %s\n\n%s\n", summary.UpdatedAt.Format("2006-01-02 15:04"), summary.Content)
			return nil
		},
	}
}
