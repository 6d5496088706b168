package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dawerha/backend/config"
	"github.com/dawerha/backend/internal/domain/scheduler"
	"github.com/dawerha/backend/internal/repository"
	"github.com/dawerha/backend/migration"
	"github.com/dawerha/backend/pkg/logger"
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/dawerha/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient xredis.Client

	tenantRepo   repository.TenantRepository
	scheduleRepo repository.ActivationScheduleRepository
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(cctx.Context, cfg)
	return nil
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx).Log
	level := logger.ParseLevel(cfg.Level)

	var l logger.Logger
	if cfg.File != "" {
		l = logger.NewRotatingLogger(level, cfg.File, cfg.MaxSizeMB, cfg.MaxBackups)
	} else {
		l = logger.NewLogger(level)
	}

	s.ctx = xcontext.WithLogger(s.ctx, l)
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := xcontext.Configs(s.ctx).Database

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}

	return db, nil
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) migrateDB() error {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		return fmt.Errorf("cannot migrate database: %w", err)
	}

	return nil
}

func (s *srv) loadRedisClient() error {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		return fmt.Errorf("cannot connect to redis: %w", err)
	}

	s.redisClient = redisClient
	return nil
}

func (s *srv) loadRepos() {
	s.tenantRepo = repository.NewTenantRepository()
	s.scheduleRepo = repository.NewActivationScheduleRepository()
}

func (s *srv) newEngine(opts ...scheduler.Option) (*scheduler.Engine, error) {
	loc, err := time.LoadLocation(xcontext.Configs(s.ctx).Scheduler.ReferenceTimezone)
	if err != nil {
		return nil, err
	}

	opts = append([]scheduler.Option{scheduler.WithLocation(loc)}, opts...)
	return scheduler.NewEngine(s.tenantRepo, s.scheduleRepo, opts...), nil
}

// newThrottle shares the tick budget through redis when a throttle key is
// configured, otherwise it only limits this process.
func (s *srv) newThrottle() (scheduler.Throttle, error) {
	cfg := xcontext.Configs(s.ctx).Scheduler
	if cfg.ThrottleKey == "" {
		return scheduler.NewLocalThrottle(cfg.ThrottleInterval.Duration), nil
	}

	if err := s.loadRedisClient(); err != nil {
		return nil, err
	}

	return scheduler.NewRedisThrottle(s.redisClient, cfg.ThrottleKey, cfg.ThrottleInterval.Duration), nil
}

func (s *srv) close() {
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close redis client: %v", err)
		}
	}

	if l, ok := xcontext.Logger(s.ctx).(interface{ Sync() error }); ok {
		_ = l.Sync()
	}
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "warn", "warning":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}
