package cli

import (
	"context"
	"fmt"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/model"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var flags appFlags
	var limit int
	var all bool

	cmdFlags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of memories to show",
			Value:       20,
			Destination: &limit,
		},
		&cli.BoolFlag{
			Name:        "all",
			Usage:       "Show every memory, oldest first",
			Destination: &all,
		},
	}
	cmdFlags = append(cmdFlags, flags.flags()...)

	return &cli.Command{
		Name:  "list",
		Usage: "List stored memories, newest first",
		Flags: cmdFlags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, uc, _, err := flags.configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			var memories []*model.Memory
			if all {
				memories, err = uc.ListAll(ctx)
			} else {
				memories, err = uc.ListRecent(ctx, limit)
			}
			if err != nil {
				return err
			}

			if len(memories) == 0 {
				fmt.Println("No memories stored.")
				return nil
			}

			for _, m := range memories {
				embedded := " "
				if m.HasEmbedding() {
					embedded = "*"
				}
				fmt.Printf("%s %s  %-16s  %s  %s\n",
					embedded,
					m.CreatedAt.Format("2006-01-02 15:04"),
					m.Type,
					m.ID,
					m.Content,
				)
			}
			return nil
		},
	}
}
