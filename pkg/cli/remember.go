package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/types"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdRemember() *cli.Command {
	var flags appFlags
	var memType string
	var metadataJSON string

	cmdFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "type",
			Usage:       "Memory type (e.g. conversation, fact, preference)",
			Value:       string(types.TypeConversation),
			Destination: &memType,
		},
		&cli.StringFlag{
			Name:        "metadata",
			Usage:       "Optional metadata as a JSON object",
			Destination: &metadataJSON,
		},
	}
	cmdFlags = append(cmdFlags, flags.flags()...)

	return &cli.Command{
		Name:      "remember",
		Usage:     "Store a new memory",
		ArgsUsage: "<content>",
		Flags:     cmdFlags,
		Action: func(ctx context.Context, c *cli.Command) error {
			content := c.Args().First()
			if content == "" {
				return goerr.New("content argument is required")
			}

			var metadata map[string]any
			if metadataJSON != "" {
				if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
					return goerr.Wrap(err, "metadata must be a JSON object")
				}
			}

			repo, uc, _, err := flags.configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			created, err := uc.Remember(ctx, content, types.MemoryType(memType), metadata)
			if err != nil {
				return err
			}

			fmt.Printf("Memory stored with ID: %s\n", created.ID)
			return nil
		},
	}
}
