// Package metrics exposes the differencing engine's state as Prometheus
// collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dm/elasticstat/internal/engine"
	"github.com/dm/elasticstat/internal/model"
)

const namespace = "elasticstat"

// Metrics holds every collector. The zero value is not usable; call New.
type Metrics struct {
	Cycles        prometheus.Counter
	FetchFailures prometheus.Counter
	CycleDuration prometheus.Histogram
	FetchDuration prometheus.Histogram
	KnownNodes    *prometheus.GaugeVec
	MissingNodes  prometheus.Gauge
	Joins         prometheus.Counter
	Leaves        prometheus.Counter
	Rejoins       prometheus.Counter
	Evictions     prometheus.Counter
	RoleChanges   prometheus.Counter
	Regressions   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Total number of completed refresh cycles",
		}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Total number of snapshots that could not be acquired",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Time spent reconciling and diffing one snapshot",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent acquiring one snapshot from the cluster",
			Buckets:   prometheus.DefBuckets,
		}),
		KnownNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "known_nodes",
			Help:      "Nodes tracked in the topology, by role",
		}, []string{"role"}),
		MissingNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "missing_nodes",
			Help:      "Known nodes absent from the latest snapshot",
		}),
		Joins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "topology",
			Name:      "joins_total",
			Help:      "Total number of nodes seen for the first time",
		}),
		Leaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "topology",
			Name:      "leaves_total",
			Help:      "Total number of nodes that went missing",
		}),
		Rejoins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "topology",
			Name:      "rejoins_total",
			Help:      "Total number of missing nodes that came back",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "topology",
			Name:      "evictions_total",
			Help:      "Total number of missing nodes forgotten",
		}),
		RoleChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "topology",
			Name:      "role_changes_total",
			Help:      "Total number of nodes that moved between roles",
		}),
		Regressions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counter_regressions_total",
			Help:      "Total number of cumulative counters observed decreasing",
		}, []string{"counter"}),
	}

	reg.MustRegister(
		m.Cycles, m.FetchFailures, m.CycleDuration, m.FetchDuration,
		m.KnownNodes, m.MissingNodes,
		m.Joins, m.Leaves, m.Rejoins, m.Evictions, m.RoleChanges,
		m.Regressions,
	)
	for _, role := range model.RoleOrder {
		m.KnownNodes.WithLabelValues(role.String())
	}
	for _, kind := range model.CounterKinds {
		m.Regressions.WithLabelValues(kind.String())
	}
	return m
}

// ObserveCycle records one completed cycle. topo is read after the cycle so
// the gauges describe the state the result was rendered from.
func (m *Metrics) ObserveCycle(res engine.CycleResult, topo *engine.Topology) {
	m.Cycles.Inc()
	m.CycleDuration.Observe(res.CycleDuration.Seconds())
	m.FetchDuration.Observe(res.FetchDuration.Seconds())

	for _, role := range model.RoleOrder {
		m.KnownNodes.WithLabelValues(role.String()).Set(float64(topo.Count(role)))
	}

	missing := 0
	for _, rec := range res.Nodes {
		if rec.Stale {
			missing++
		}
	}
	m.MissingNodes.Set(float64(missing))

	m.Joins.Add(float64(len(res.Joined)))
	m.Leaves.Add(float64(len(res.Left)))
	m.Rejoins.Add(float64(len(res.Rejoined)))
	m.Evictions.Add(float64(len(res.Evicted)))
	m.RoleChanges.Add(float64(len(res.RoleChanges)))
	for _, r := range res.Regressions {
		m.Regressions.WithLabelValues(r.Kind.String()).Inc()
	}
}

// ObserveFetchFailure records a snapshot that could not be acquired.
func (m *Metrics) ObserveFetchFailure() {
	m.FetchFailures.Inc()
}
