package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered on a per-server registry so tests can build many
// servers in one process.
type metrics struct {
	reg          *prometheus.Registry
	plans        *prometheus.CounterVec
	planDuration prometheus.Histogram
	expanded     *prometheus.HistogramVec
	commits      *prometheus.CounterVec
	spent        prometheus.Counter
	jobsLive     prometheus.Gauge
	ticks        prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &metrics{
		reg: reg,
		plans: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tileroute_plans_total",
			Help: "Route planning calls by outcome.",
		}, []string{"outcome"}),
		planDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tileroute_plan_duration_seconds",
			Help:    "Wall time of synchronous route planning.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		expanded: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tileroute_search_expanded_nodes",
			Help:    "Nodes expanded per search.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"mode"}),
		commits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tileroute_commits_total",
			Help: "Route commits by outcome.",
		}, []string{"outcome"}),
		spent: f.NewCounter(prometheus.CounterOpts{
			Name: "tileroute_construction_spent_total",
			Help: "Money spent on construction.",
		}),
		jobsLive: f.NewGauge(prometheus.GaugeOpts{
			Name: "tileroute_jobs_live",
			Help: "Asynchronous planning jobs still running.",
		}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "tileroute_scheduler_ticks_total",
			Help: "Scheduler ticks run.",
		}),
	}
}
