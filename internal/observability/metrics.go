package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics bundles the engine's counters. Services record outcomes here;
// the HTTP server exposes the registry on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	CreditOutcomes    *prometheus.CounterVec
	SessionsCredited  prometheus.Counter
	BatchConfirms     prometheus.Counter
	BatchConfirmSize  prometheus.Histogram
	UnresolvedRates   prometheus.Counter
	LegacyNameMatches prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		CreditOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edupoint_credit_outcomes_total",
			Help: "Session crediting outcomes by result.",
		}, []string{"result"}),
		SessionsCredited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupoint_sessions_credited_total",
			Help: "Total sessions added to student entitlements.",
		}),
		BatchConfirms: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupoint_work_session_batch_confirms_total",
			Help: "Successful batch confirmations of work sessions.",
		}),
		BatchConfirmSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "edupoint_work_session_batch_confirm_size",
			Help:    "Number of work sessions per batch confirmation.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
		UnresolvedRates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupoint_payroll_unresolved_rates_total",
			Help: "Work sessions with no resolvable pay rate.",
		}),
		LegacyNameMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupoint_roster_legacy_name_matches_total",
			Help: "Roster mappings resolved by class-name fallback.",
		}),
	}
	reg.MustRegister(
		m.CreditOutcomes,
		m.SessionsCredited,
		m.BatchConfirms,
		m.BatchConfirmSize,
		m.UnresolvedRates,
		m.LegacyNameMatches,
	)
	return m
}
