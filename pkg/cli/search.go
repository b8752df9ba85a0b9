package cli

import (
	"context"
	"fmt"

	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSearch() *cli.Command {
	var flags appFlags
	var limit int

	cmdFlags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of results",
			Value:       10,
			Destination: &limit,
		},
	}
	cmdFlags = append(cmdFlags, flags.flags()...)

	return &cli.Command{
		Name:      "search",
		Usage:     "Search memories (semantic when available, substring fallback)",
		ArgsUsage: "<query>",
		Flags:     cmdFlags,
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return goerr.New("query argument is required")
			}

			repo, uc, _, err := flags.configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			hits, err := uc.Search(ctx, query, limit)
			if err != nil {
				return err
			}

			if len(hits) == 0 {
				fmt.Println("No memories found.")
				return nil
			}

			for _, h := range hits {
				fmt.Printf("[%.3f] %s  %s  %s\n",
					h.Score,
					h.Memory.CreatedAt.Format("2006-01-02 15:04"),
					h.Memory.ID,
					h.Memory.Content,
				)
			}
			return nil
		},
	}
}
