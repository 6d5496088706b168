package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
env = "production"

[database]
host = "db.internal"
database = "spins"

[scheduler]
tick_interval = "10s"
throttle_key = "dawerha:tick"
`), 0o600)
	require.NoError(t, err)

	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Env)
	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, "3306", cfg.Database.Port)
	require.Equal(t, "secret", cfg.Database.Password)
	require.Equal(t, 10*time.Second, cfg.Scheduler.TickInterval.Duration)
	require.Equal(t, DefaultThrottleInterval, cfg.Scheduler.ThrottleInterval.Duration)
	require.Equal(t, "dawerha:tick", cfg.Scheduler.ThrottleKey)
	require.Equal(t, DefaultReferenceTimezone, cfg.Scheduler.ReferenceTimezone)
}

func Test_Load_ThrottleSlowerThanTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[scheduler]
tick_interval = "30s"
throttle_interval = "5m"
`), 0o600)
	require.NoError(t, err)

	_, err = Load(path)
	require.Error(t, err)
}

func Test_Load_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultTickInterval, cfg.Scheduler.TickInterval.Duration)
}

func Test_Configs_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Configs)
		wantErr bool
	}{
		{
			name:   "defaults",
			modify: func(*Configs) {},
		},
		{
			name:    "tick slower than a minute",
			modify:  func(c *Configs) { c.Scheduler.TickInterval = Duration{2 * time.Minute} },
			wantErr: true,
		},
		{
			name:    "zero tick",
			modify:  func(c *Configs) { c.Scheduler.TickInterval = Duration{} },
			wantErr: true,
		},
		{
			name:    "unknown timezone",
			modify:  func(c *Configs) { c.Scheduler.ReferenceTimezone = "Mars/Olympus" },
			wantErr: true,
		},
		{
			name:    "negative throttle",
			modify:  func(c *Configs) { c.Scheduler.ThrottleInterval = Duration{-time.Second} },
			wantErr: true,
		},
		{
			name: "throttle slower than a minute",
			modify: func(c *Configs) {
				c.Scheduler.TickInterval = Duration{30 * time.Second}
				c.Scheduler.ThrottleInterval = Duration{5 * time.Minute}
			},
			wantErr: true,
		},
		{
			name: "throttle equal to tick",
			modify: func(c *Configs) {
				c.Scheduler.TickInterval = Duration{30 * time.Second}
				c.Scheduler.ThrottleInterval = Duration{30 * time.Second}
			},
			wantErr: true,
		},
		{
			name: "throttle below tick",
			modify: func(c *Configs) {
				c.Scheduler.TickInterval = Duration{30 * time.Second}
				c.Scheduler.ThrottleInterval = Duration{20 * time.Second}
			},
		},
		{
			name:   "no throttle",
			modify: func(c *Configs) { c.Scheduler.ThrottleInterval = Duration{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
