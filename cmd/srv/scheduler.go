package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dawerha/backend/internal/domain/cron"
	"github.com/dawerha/backend/internal/domain/scheduler"
	"github.com/dawerha/backend/pkg/prometheus"
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (s *srv) startScheduler(*cli.Context) error {
	defer s.close()

	cfg := xcontext.Configs(s.ctx)
	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadRepos()

	engine, err := s.newEngine()
	if err != nil {
		return err
	}

	throttle, err := s.newThrottle()
	if err != nil {
		return err
	}

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewActivationCronJob(
		scheduler.NewThrottled(engine, throttle),
		cfg.Scheduler.TickInterval.Duration,
	))

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		cronJobManager.Start(ctx)
		return nil
	})

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", prometheus.NewHandler())
		httpSrv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		eg.Go(func() error {
			xcontext.Logger(ctx).Infof("Starting metrics server on %s", cfg.Metrics.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		})

		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	xcontext.Logger(ctx).Infof("Scheduler started, tick every %s in %s",
		cfg.Scheduler.TickInterval.Duration, cfg.Scheduler.ReferenceTimezone)

	return eg.Wait()
}
