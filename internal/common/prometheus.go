package common

import "github.com/prometheus/client_golang/prometheus"

const (
	SchedulerTicksTotal       = "scheduler_ticks_total"
	SchedulerActivationsTotal = "scheduler_activations_total"
	SchedulerFailuresTotal    = "scheduler_failures_total"
	SchedulerTickDuration     = "scheduler_tick_duration_seconds"
	PrizeSpinsTotal           = "prize_spins_total"
	TenantManualChangesTotal  = "tenant_manual_changes_total"
	SchedulerEnabledSchedules = "scheduler_enabled_schedules"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{
		SchedulerEnabledSchedules: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: SchedulerEnabledSchedules,
			Help: "Number of enabled schedules seen by the last tick",
		}, []string{}),
	}

	PromCounters = map[string]*prometheus.CounterVec{
		SchedulerTicksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SchedulerTicksTotal,
			Help: "Count of all scheduler ticks",
		}, []string{"result"}),
		SchedulerActivationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SchedulerActivationsTotal,
			Help: "Count of tenants activated by a schedule",
		}, []string{"source"}),
		SchedulerFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SchedulerFailuresTotal,
			Help: "Count of schedules which failed to activate",
		}, []string{}),
		PrizeSpinsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PrizeSpinsTotal,
			Help: "Count of all prize draws",
		}, []string{"tenant_kind"}),
		TenantManualChangesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: TenantManualChangesTotal,
			Help: "Count of operator activations and deactivations",
		}, []string{"action"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		SchedulerTickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: SchedulerTickDuration,
			Help: "Duration of scheduler ticks",
		}, []string{}),
	}
)
