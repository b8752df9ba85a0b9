package config

import (
	"os"
	"time"

	"github.com/j4ckxyz/memory-node-mcp/pkg/service/maintenance"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

const (
	defaultMaintenanceInterval   = 24 * time.Hour
	defaultGlobalSummaryInterval = 6 * time.Hour
)

// Maintenance holds CLI flags for the maintenance policy, optionally loaded
// from a TOML file:
//
//	[maintenance]
//	batch_size = 20
//	summary_window = 50
//	summary_threshold = 10
//	global_window = 100
//	interval = "24h"
//	global_summary_interval = "6h"
type Maintenance struct {
	policyPath string
}

type policyFile struct {
	Maintenance policySection `toml:"maintenance"`
}

type policySection struct {
	BatchSize             int    `toml:"batch_size"`
	SummaryWindow         int    `toml:"summary_window"`
	SummaryThreshold      int    `toml:"summary_threshold"`
	GlobalWindow          int    `toml:"global_window"`
	Interval              string `toml:"interval"`
	GlobalSummaryInterval string `toml:"global_summary_interval"`
}

// MaintenanceSchedule is the resolved maintenance policy plus worker intervals
type MaintenanceSchedule struct {
	Policy                maintenance.Policy
	Interval              time.Duration
	GlobalSummaryInterval time.Duration
}

// Flags returns CLI flags for maintenance policy configuration
func (m *Maintenance) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "maintenance-policy",
			Usage:       "Path to a TOML file tuning the maintenance policy",
			Sources:     cli.EnvVars("MEMNODE_MAINTENANCE_POLICY"),
			Destination: &m.policyPath,
		},
	}
}

// Configure resolves the maintenance schedule, applying defaults for every
// field the policy file omits.
func (m *Maintenance) Configure() (*MaintenanceSchedule, error) {
	schedule := &MaintenanceSchedule{
		Policy:                maintenance.DefaultPolicy(),
		Interval:              defaultMaintenanceInterval,
		GlobalSummaryInterval: defaultGlobalSummaryInterval,
	}

	if m.policyPath == "" {
		return schedule, nil
	}

	data, err := os.ReadFile(m.policyPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read maintenance policy", goerr.V("path", m.policyPath))
	}

	var file policyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse maintenance policy", goerr.V("path", m.policyPath))
	}

	sec := file.Maintenance
	if sec.BatchSize < 0 || sec.SummaryWindow < 0 || sec.SummaryThreshold < 0 || sec.GlobalWindow < 0 {
		return nil, goerr.New("maintenance policy values must not be negative", goerr.V("path", m.policyPath))
	}

	if sec.BatchSize > 0 {
		schedule.Policy.BatchSize = sec.BatchSize
	}
	if sec.SummaryWindow > 0 {
		schedule.Policy.SummaryWindow = sec.SummaryWindow
	}
	if sec.SummaryThreshold > 0 {
		schedule.Policy.SummaryThreshold = sec.SummaryThreshold
	}
	if sec.GlobalWindow > 0 {
		schedule.Policy.GlobalWindow = sec.GlobalWindow
	}

	if sec.Interval != "" {
		d, err := time.ParseDuration(sec.Interval)
		if err != nil || d <= 0 {
			return nil, goerr.New("invalid maintenance interval", goerr.V("interval", sec.Interval))
		}
		schedule.Interval = d
	}
	if sec.GlobalSummaryInterval != "" {
		d, err := time.ParseDuration(sec.GlobalSummaryInterval)
		if err != nil || d <= 0 {
			return nil, goerr.New("invalid global summary interval", goerr.V("interval", sec.GlobalSummaryInterval))
		}
		schedule.GlobalSummaryInterval = d
	}

	return schedule, nil
}
