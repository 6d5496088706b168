package cron

import (
	"context"
	"time"

	"github.com/dawerha/backend/internal/domain/scheduler"
	"github.com/dawerha/backend/pkg/xcontext"
)

// ActivationCronJob drives the scheduler. It must fire at least once per
// minute, otherwise exact-hour triggers are missed.
type ActivationCronJob struct {
	ticker   scheduler.Ticker
	interval time.Duration
	clock    func() time.Time
}

func NewActivationCronJob(ticker scheduler.Ticker, interval time.Duration) *ActivationCronJob {
	return &ActivationCronJob{
		ticker:   ticker,
		interval: interval,
		clock:    time.Now,
	}
}

func (job *ActivationCronJob) Do(ctx context.Context) {
	report, err := job.ticker.Tick(ctx, job.clock())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot run scheduler tick: %v", err)
		return
	}

	if report.Throttled {
		return
	}

	if len(report.Activated) > 0 || len(report.Failures) > 0 {
		xcontext.Logger(ctx).Infof("Scheduler tick: evaluated %d, activated %d, skipped %d, failed %d",
			report.Evaluated, len(report.Activated), len(report.Skipped), len(report.Failures))
	}
}

func (job *ActivationCronJob) RunNow() bool {
	return true
}

// Next aligns ticks on multiples of the interval so that minute 0 of every
// hour is always covered.
func (job *ActivationCronJob) Next() time.Time {
	return job.clock().Add(job.interval).Truncate(job.interval)
}
