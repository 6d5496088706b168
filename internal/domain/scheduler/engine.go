package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dawerha/backend/internal/common"
	"github.com/dawerha/backend/internal/domain/activation"
	"github.com/dawerha/backend/internal/entity"
	"github.com/dawerha/backend/internal/repository"
	"github.com/dawerha/backend/pkg/dateutil"
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

// errAlreadyActivated is returned by activate when another tick, possibly of
// another process, activated the schedule in the current hour first.
var errAlreadyActivated = errors.New("schedule already activated this hour")

type Ticker interface {
	Tick(ctx context.Context, now time.Time) (*TickReport, error)
}

// Engine evaluates every enabled schedule and activates the tenants whose
// trigger edge is now.
type Engine struct {
	tenantRepo   repository.TenantRepository
	scheduleRepo repository.ActivationScheduleRepository

	location *time.Location
	dryRun   bool

	// tenantLocks serialises activations of one tenant across concurrent
	// ticks of this process.
	tenantLocks *xsync.MapOf[string, *sync.Mutex]
}

type Option func(*Engine)

// WithLocation evaluates schedules in loc instead of the reference timezone.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		e.location = loc
	}
}

// WithDryRun reports the activations a tick would make without writing them.
func WithDryRun() Option {
	return func(e *Engine) {
		e.dryRun = true
	}
}

func NewEngine(
	tenantRepo repository.TenantRepository,
	scheduleRepo repository.ActivationScheduleRepository,
	opts ...Option,
) *Engine {
	e := &Engine{
		tenantRepo:   tenantRepo,
		scheduleRepo: scheduleRepo,
		location:     dateutil.ReferenceLocation(),
		tenantLocks:  xsync.NewMapOf[*sync.Mutex](),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Tick runs one evaluation pass at now. It fails as a whole only when the
// enabled schedules cannot be loaded. A failure of one schedule is recorded
// in the report and the remaining schedules are still evaluated.
func (e *Engine) Tick(ctx context.Context, now time.Time) (*TickReport, error) {
	startedAt := time.Now()
	defer func() {
		common.PromHistograms[common.SchedulerTickDuration].
			WithLabelValues().Observe(time.Since(startedAt).Seconds())
	}()

	schedules, err := e.scheduleRepo.GetEnabled(ctx)
	if err != nil {
		common.PromCounters[common.SchedulerTicksTotal].WithLabelValues("failed").Inc()
		xcontext.Logger(ctx).Errorf("Cannot load enabled schedules: %v", err)
		return nil, err
	}

	common.PromGauges[common.SchedulerEnabledSchedules].WithLabelValues().Set(float64(len(schedules)))

	report := &TickReport{At: now, DryRun: e.dryRun, Evaluated: len(schedules)}
	triggered := map[string]bool{}
	for i := range schedules {
		schedule := &schedules[i]
		weekly := schedule.WeeklySchedule(e.location)
		if !weekly.ShouldTriggerNow(now) {
			continue
		}

		if triggered[schedule.TenantID] {
			report.Skipped = append(report.Skipped, Skip{
				ScheduleID: schedule.ID,
				TenantID:   schedule.TenantID,
				Reason:     SkipTenantClaimed,
			})
			continue
		}

		// The tenant is claimed even when its activation fails, so a later
		// schedule of the same tenant never races the failed one.
		triggered[schedule.TenantID] = true

		state, err := e.activate(ctx, schedule, weekly, now)
		if errors.Is(err, errAlreadyActivated) {
			xcontext.Logger(ctx).Infof("Schedule %s of tenant %s was already activated this hour",
				schedule.ID, schedule.TenantID)
			report.Skipped = append(report.Skipped, Skip{
				ScheduleID: schedule.ID,
				TenantID:   schedule.TenantID,
				Reason:     SkipAlreadyActivated,
			})
			continue
		}

		if err != nil {
			common.PromCounters[common.SchedulerFailuresTotal].WithLabelValues().Inc()
			xcontext.Logger(ctx).Errorf("Cannot activate tenant %s from schedule %s: %v",
				schedule.TenantID, schedule.ID, err)
			report.Failures = append(report.Failures, Failure{
				ScheduleID: schedule.ID,
				TenantID:   schedule.TenantID,
				Err:        err,
			})
			continue
		}

		report.Activated = append(report.Activated, Activated{
			ScheduleID:  schedule.ID,
			TenantID:    schedule.TenantID,
			WindowStart: *state.WindowStart,
			WindowEnd:   *state.WindowEnd,
		})

		if e.dryRun {
			xcontext.Logger(ctx).Infof("[DRY RUN] Would activate tenant %s from schedule %s until %s",
				schedule.TenantID, schedule.ID, state.WindowEnd.In(e.location).Format(time.DateTime))
			continue
		}

		common.PromCounters[common.SchedulerActivationsTotal].WithLabelValues("schedule").Inc()
		xcontext.Logger(ctx).Infof("Activated tenant %s from schedule %s until %s",
			schedule.TenantID, schedule.ID, state.WindowEnd.In(e.location).Format(time.DateTime))
	}

	common.PromCounters[common.SchedulerTicksTotal].WithLabelValues("ok").Inc()
	return report, nil
}

func (e *Engine) activate(
	ctx context.Context,
	schedule *entity.ActivationSchedule,
	weekly activation.WeeklySchedule,
	now time.Time,
) (activation.State, error) {
	lock, _ := e.tenantLocks.LoadOrStore(schedule.TenantID, &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()

	if e.dryRun {
		tenant, err := e.tenantRepo.GetByID(ctx, schedule.TenantID)
		if err != nil {
			return activation.State{}, fmt.Errorf("cannot load tenant: %w", err)
		}

		state := tenant.ActivationState()
		state.ManualActivate(weekly.Activation(), now, e.location)
		return state, nil
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	// The schedule list of this tick may be stale. Claiming the hour on the
	// row itself keeps the activation exactly-once across processes.
	claimed, err := e.scheduleRepo.ClaimActivation(
		ctx, schedule.ID, dateutil.TopOfHour(now, e.location), now)
	if err != nil {
		return activation.State{}, fmt.Errorf("cannot claim activation: %w", err)
	}

	if !claimed {
		return activation.State{}, errAlreadyActivated
	}

	tenant, err := e.tenantRepo.GetByID(ctx, schedule.TenantID)
	if err != nil {
		return activation.State{}, fmt.Errorf("cannot load tenant: %w", err)
	}

	state := tenant.ActivationState()
	state.ManualActivate(weekly.Activation(), now, e.location)
	tenant.SetActivationState(state)

	if err := e.tenantRepo.UpdateActivation(ctx, tenant.ID, tenant.Activation()); err != nil {
		return activation.State{}, fmt.Errorf("cannot save activation: %w", err)
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		return activation.State{}, fmt.Errorf("cannot commit activation: %w", err)
	}

	return state, nil
}
