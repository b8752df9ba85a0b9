package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/j4ckxyz/memory-node-mcp/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for logging configuration
type Logger struct {
	level string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("MEMNODE_LOG_LEVEL"),
			Destination: &l.level,
		},
	}
}

// Configure builds the process-wide logger. Logs always go to stderr because
// the MCP front end owns stdout for the protocol stream.
func (l *Logger) Configure() *slog.Logger {
	var w io.Writer = os.Stderr
	logger := logging.New(l.level, w)
	logging.SetDefault(logger)
	return logger
}

// LogValue renders the configuration for startup logging
func (l *Logger) LogValue() slog.Value {
	return slog.GroupValue(slog.String("level", l.level))
}
