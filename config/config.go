package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

const (
	DefaultReferenceTimezone = "Asia/Riyadh"
	DefaultTickInterval      = 5 * time.Second
	DefaultThrottleInterval  = time.Second
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs  `toml:"database"`
	Redis     RedisConfigs     `toml:"redis"`
	Scheduler SchedulerConfigs `toml:"scheduler"`
	Log       LogConfigs       `toml:"log"`
	Metrics   MetricsConfigs   `toml:"metrics"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type SchedulerConfigs struct {
	// TickInterval is how often the activation job evaluates schedules. A
	// schedule triggers only during minute 0 of its start hour, so this must
	// not exceed one minute.
	TickInterval Duration `toml:"tick_interval"`

	// ThrottleInterval bounds how often a tick may run across every caller
	// sharing the throttle. It must stay below TickInterval and one minute.
	ThrottleInterval Duration `toml:"throttle_interval"`

	// ThrottleKey enables the redis backed throttle when set, so several
	// processes share one tick budget.
	ThrottleKey string `toml:"throttle_key"`

	ReferenceTimezone string `toml:"reference_timezone"`
}

type LogConfigs struct {
	Level string `toml:"level"`

	// File is optional. When empty, logs go to stderr only.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

type MetricsConfigs struct {
	Addr string `toml:"addr"`
}

// Duration lets toml files carry values such as "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v
	return nil
}

func Default() Configs {
	return Configs{
		Env: "development",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "dawerha",
			User:     "root",
			LogLevel: "error",
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Scheduler: SchedulerConfigs{
			TickInterval:      Duration{DefaultTickInterval},
			ThrottleInterval:  Duration{DefaultThrottleInterval},
			ReferenceTimezone: DefaultReferenceTimezone,
		},
		Log: LogConfigs{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Load reads the toml file at path on top of the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func (c *Configs) applyEnv() {
	overrides := map[string]*string{
		"ENV":                &c.Env,
		"DB_HOST":            &c.Database.Host,
		"DB_PORT":            &c.Database.Port,
		"DB_NAME":            &c.Database.Database,
		"DB_USER":            &c.Database.User,
		"DB_PASSWORD":        &c.Database.Password,
		"REDIS_ADDR":         &c.Redis.Addr,
		"LOG_LEVEL":          &c.Log.Level,
		"LOG_FILE":           &c.Log.File,
		"METRICS_ADDR":       &c.Metrics.Addr,
		"SCHEDULER_TIMEZONE": &c.Scheduler.ReferenceTimezone,
	}

	for name, field := range overrides {
		if v, ok := os.LookupEnv(name); ok {
			*field = v
		}
	}
}

func (c *Configs) Validate() error {
	if c.Scheduler.TickInterval.Duration <= 0 {
		return errors.New("scheduler tick interval must be positive")
	}

	if c.Scheduler.TickInterval.Duration > time.Minute {
		return fmt.Errorf("scheduler tick interval %s exceeds one minute, exact-hour triggers would be missed",
			c.Scheduler.TickInterval.Duration)
	}

	throttle := c.Scheduler.ThrottleInterval.Duration
	if throttle < 0 {
		return errors.New("scheduler throttle interval must not be negative")
	}

	// A throttled tick is dropped, so the throttle must never be the slower
	// of the two intervals.
	if throttle >= time.Minute || throttle >= c.Scheduler.TickInterval.Duration {
		return fmt.Errorf("scheduler throttle interval %s must be below one minute and below the tick interval %s",
			throttle, c.Scheduler.TickInterval.Duration)
	}

	if c.Scheduler.ReferenceTimezone == "" {
		return errors.New("scheduler reference timezone is required")
	}

	if _, err := time.LoadLocation(c.Scheduler.ReferenceTimezone); err != nil {
		return fmt.Errorf("invalid reference timezone: %w", err)
	}

	return nil
}
