package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dawerha/backend/internal/domain/scheduler"
	"github.com/urfave/cli/v2"
)

func (s *srv) startTick(cctx *cli.Context) error {
	defer s.close()

	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadRepos()

	var opts []scheduler.Option
	if cctx.Bool("dry-run") {
		opts = append(opts, scheduler.WithDryRun())
	}

	engine, err := s.newEngine(opts...)
	if err != nil {
		return err
	}

	now := time.Now()
	if at := cctx.Timestamp("at"); at != nil {
		now = *at
	}

	report, err := engine.Tick(s.ctx, now)
	if err != nil {
		return err
	}

	printReport(cctx.App.Writer, report)
	if len(report.Failures) > 0 {
		return cli.Exit(fmt.Sprintf("%d schedule(s) failed", len(report.Failures)), 1)
	}

	return nil
}

func printReport(w io.Writer, report *scheduler.TickReport) {
	mode := "tick"
	if report.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(w, "%s at %s: evaluated %d schedule(s)\n", mode, report.At.Format(time.RFC3339), report.Evaluated)
	for _, a := range report.Activated {
		end := "open"
		if !a.WindowEnd.IsZero() {
			end = a.WindowEnd.Format(time.RFC3339)
		}

		fmt.Fprintf(w, "  activate tenant %s by schedule %s: %s -> %s\n",
			a.TenantID, a.ScheduleID, a.WindowStart.Format(time.RFC3339), end)
	}

	for _, skip := range report.Skipped {
		fmt.Fprintf(w, "  skip schedule %s (tenant %s): %s\n", skip.ScheduleID, skip.TenantID, skip.Reason)
	}

	for _, f := range report.Failures {
		fmt.Fprintf(w, "  fail schedule %s (tenant %s): %v\n", f.ScheduleID, f.TenantID, f.Err)
	}
}
