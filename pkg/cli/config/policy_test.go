package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestMaintenanceConfigure(t *testing.T) {
	t.Run("no file yields defaults", func(t *testing.T) {
		var cfg Maintenance

		schedule, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, schedule.Policy.BatchSize).Equal(20)
		gt.Value(t, schedule.Policy.SummaryWindow).Equal(50)
		gt.Value(t, schedule.Policy.SummaryThreshold).Equal(10)
		gt.Value(t, schedule.Policy.GlobalWindow).Equal(100)
		gt.Value(t, schedule.Interval).Equal(24 * time.Hour)
		gt.Value(t, schedule.GlobalSummaryInterval).Equal(6 * time.Hour)
	})

	t.Run("file overrides only the fields it sets", func(t *testing.T) {
		cfg := Maintenance{
			policyPath: writePolicyFile(t, `
[maintenance]
batch_size = 5
global_summary_interval = "30m"
`),
		}

		schedule, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, schedule.Policy.BatchSize).Equal(5)
		gt.Value(t, schedule.Policy.SummaryWindow).Equal(50)
		gt.Value(t, schedule.Interval).Equal(24 * time.Hour)
		gt.Value(t, schedule.GlobalSummaryInterval).Equal(30 * time.Minute)
	})

	t.Run("negative values are rejected", func(t *testing.T) {
		cfg := Maintenance{
			policyPath: writePolicyFile(t, `
[maintenance]
batch_size = -1
`),
		}

		_, err := cfg.Configure()
		gt.Value(t, err).NotNil()
	})

	t.Run("unparsable interval is rejected", func(t *testing.T) {
		cfg := Maintenance{
			policyPath: writePolicyFile(t, `
[maintenance]
interval = "yearly"
`),
		}

		_, err := cfg.Configure()
		gt.Value(t, err).NotNil()
	})

	t.Run("missing file is an error", func(t *testing.T) {
		cfg := Maintenance{policyPath: filepath.Join(t.TempDir(), "absent.toml")}

		_, err := cfg.Configure()
		gt.Value(t, err).NotNil()
	})
}
