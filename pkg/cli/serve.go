package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpctrl "github.com/j4ckxyz/memory-node-mcp/pkg/controller/http"
	"github.com/j4ckxyz/memory-node-mcp/pkg/service/worker"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdServe() *cli.Command {
	var addr string
	var flags appFlags

	cmdFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MEMNODE_ADDR"),
			Destination: &addr,
		},
	}
	cmdFlags = append(cmdFlags, flags.flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the HTTP JSON API with background maintenance workers",
		Flags:   cmdFlags,
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

			summaryWorker := worker.NewGlobalSummaryWorker(uc.Maintenance(), schedule.GlobalSummaryInterval)
			if err := summaryWorker.Start(ctx); err != nil {
				maintWorker.Stop()
				return goerr.Wrap(err, "failed to start global summary worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			// The derived group context cancels on signal or when the server
			// goroutine fails (e.g. the address is already in use), so the
			// shutdown goroutine never blocks on a signal that will not come.
			g, gctx := errgroup.WithContext(sigCtx)
			g.Go(func() error {
				logging.From(ctx).Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to run HTTP server")
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				logging.From(ctx).Info("Shutting down")

				summaryWorker.Stop()
				maintWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}

			logging.From(ctx).Info("Server shutdown completed")
			return nil
		},
	}
}
