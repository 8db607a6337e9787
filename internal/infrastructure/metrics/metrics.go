package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Engine metrics
	EventsApplied *prometheus.CounterVec
	EventsIgnored *prometheus.CounterVec

	// Input metrics
	RecordsRead     prometheus.Counter
	RecordsRejected *prometheus.CounterVec

	// Account metrics
	Accounts       prometheus.Gauge
	LockedAccounts prometheus.Gauge

	// Run metrics
	RunDuration  prometheus.Histogram
	ExportErrors *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Engine metrics
		EventsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xact_events_applied_total",
				Help: "Total number of events that changed ledger state",
			},
			[]string{"type"},
		),
		EventsIgnored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xact_events_ignored_total",
				Help: "Total number of events dropped by the engine by reason",
			},
			[]string{"type", "reason"},
		),

		// Input metrics
		RecordsRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "xact_records_read_total",
			Help: "Total number of input records read",
		}),
		RecordsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xact_records_rejected_total",
				Help: "Total number of input records rejected by the reader",
			},
			[]string{"reason"},
		),

		// Account metrics
		Accounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "xact_accounts",
			Help: "Number of client accounts",
		}),
		LockedAccounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "xact_accounts_locked",
			Help: "Number of locked client accounts",
		}),

		// Run metrics
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "xact_run_duration_seconds",
			Help:    "Duration of a full processing run",
			Buckets: prometheus.DefBuckets,
		}),
		ExportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xact_export_errors_total",
				Help: "Total number of failed balance exports by sink",
			},
			[]string{"sink"},
		),
	}
}

// WriteTextfile writes every metric gathered by g to path in the Prometheus
// text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
