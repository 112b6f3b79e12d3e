package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics exposes counters for the dashboard engines. A nil receiver
// is valid and records nothing, so services can run without a registry.
type EngineMetrics struct {
	cacheLookups  *prometheus.CounterVec
	fetchFailures prometheus.Counter
	bulkOutcomes  *prometheus.CounterVec
	staleDiscards prometheus.Counter
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turnero",
			Subsystem: "combos",
			Name:      "cache_lookups_total",
			Help:      "Combination cache lookups by result",
		}, []string{"result"}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turnero",
			Subsystem: "combos",
			Name:      "fetch_failures_total",
			Help:      "Combination fetches that failed upstream",
		}),
		bulkOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turnero",
			Subsystem: "bulk",
			Name:      "outcomes_total",
			Help:      "Bulk mutation reports by outcome",
		}, []string{"outcome"}),
		staleDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turnero",
			Subsystem: "counts",
			Name:      "stale_discards_total",
			Help:      "Aggregate responses discarded for arriving late",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.cacheLookups, m.fetchFailures, m.bulkOutcomes, m.staleDiscards)
	return m
}

func (m *EngineMetrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *EngineMetrics) ObserveFetchFailure() {
	if m == nil {
		return
	}
	m.fetchFailures.Inc()
}

func (m *EngineMetrics) ObserveBulkOutcome(outcome string) {
	if m == nil {
		return
	}
	m.bulkOutcomes.WithLabelValues(outcome).Inc()
}

func (m *EngineMetrics) ObserveStaleDiscard() {
	if m == nil {
		return
	}
	m.staleDiscards.Inc()
}
