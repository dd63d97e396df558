package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	backupRunsTotal     *prometheus.CounterVec
	restoreAppliedTotal *prometheus.CounterVec
	restoreSkippedTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used for
// backup/restore observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		backupRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backup_runs_total",
			Help: "Total number of snapshot exports completed.",
		}, []string{"scope"})

		restoreAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restore_records_applied_total",
			Help: "Total number of snapshot records applied during restore.",
		}, []string{"collection"})

		restoreSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restore_records_skipped_total",
			Help: "Total number of snapshot records skipped during restore.",
		}, []string{"collection"})

		prometheus.MustRegister(backupRunsTotal, restoreAppliedTotal, restoreSkippedTotal)
	})
}

// BackupRuns exposes the counter for completed exports.
func BackupRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return backupRunsTotal
}

// RestoreApplied exposes the counter for applied restore records.
func RestoreApplied() *prometheus.CounterVec {
	RegisterMetrics()
	return restoreAppliedTotal
}

// RestoreSkipped exposes the counter for skipped restore records.
func RestoreSkipped() *prometheus.CounterVec {
	RegisterMetrics()
	return restoreSkippedTotal
}
