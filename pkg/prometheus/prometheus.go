package prometheus

import (
	"net/http"

	"github.com/dawerha/backend/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewHandler() http.Handler {
	return promhttp.HandlerFor(NewRegistry(), promhttp.HandlerOpts{})
}

func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()

	// default collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	for _, gauge := range common.PromGauges {
		registry.MustRegister(gauge)
	}

	for _, counter := range common.PromCounters {
		registry.MustRegister(counter)
	}

	for _, histogram := range common.PromHistograms {
		registry.MustRegister(histogram)
	}

	return registry
}
