package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the closure engine. Checker failures are
// the signal operators must watch: the registry swallows them by design, so
// the API response never reveals a broken module.
type Metrics struct {
	CheckFailures   *prometheus.CounterVec
	ArchiveFailures *prometheus.CounterVec
	DeleteFailures  *prometheus.CounterVec
	CheckDuration   *prometheus.HistogramVec

	ClosuresInitiated prometheus.Counter
	ClosuresRefused   prometheus.Counter
	ArchivesPurged    prometheus.Counter
}

// New creates a Metrics instance with all closure engine metrics registered.
func New() *Metrics {
	return &Metrics{
		CheckFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "workhive_closure_check_failures_total",
			Help: "Checker failures swallowed by the registry during check passes",
		}, []string{"module"}),
		ArchiveFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "workhive_closure_archive_failures_total",
			Help: "Checker failures swallowed by the registry during archival",
		}, []string{"module"}),
		DeleteFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "workhive_closure_delete_failures_total",
			Help: "Checker failures swallowed by the registry during archive purge",
		}, []string{"module"}),
		CheckDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workhive_closure_check_duration_seconds",
			Help:    "Duration of individual module check calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"module"}),
		ClosuresInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "workhive_closures_initiated_total",
			Help: "Organization closures accepted and archived",
		}),
		ClosuresRefused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "workhive_closures_refused_total",
			Help: "Closure attempts refused because blocking conditions exist",
		}),
		ArchivesPurged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "workhive_closure_archives_purged_total",
			Help: "Expired closure archives purged by the sweeper",
		}),
	}
}

// RecordCheckFailure counts one swallowed check failure for a module.
func (m *Metrics) RecordCheckFailure(module string) {
	m.CheckFailures.WithLabelValues(module).Inc()
}

// RecordArchiveFailure counts one swallowed archive failure for a module.
func (m *Metrics) RecordArchiveFailure(module string) {
	m.ArchiveFailures.WithLabelValues(module).Inc()
}

// RecordDeleteFailure counts one swallowed delete failure for a module.
func (m *Metrics) RecordDeleteFailure(module string) {
	m.DeleteFailures.WithLabelValues(module).Inc()
}

// ObserveCheck records the duration of one module check call.
// Call with time.Now() captured at the start of the call.
func (m *Metrics) ObserveCheck(module string, start time.Time) {
	m.CheckDuration.WithLabelValues(module).Observe(time.Since(start).Seconds())
}

// IncrementClosuresInitiated records an accepted closure.
func (m *Metrics) IncrementClosuresInitiated() { m.ClosuresInitiated.Inc() }

// IncrementClosuresRefused records a refused closure.
func (m *Metrics) IncrementClosuresRefused() { m.ClosuresRefused.Inc() }

// IncrementArchivesPurged records a purged archive.
func (m *Metrics) IncrementArchivesPurged() { m.ArchivesPurged.Inc() }
