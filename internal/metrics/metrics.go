// Package metrics exposes the Prometheus counters the background workers
// increment, registered against the default registry so a plain
// promhttp.Handler in cmd/server is enough to serve them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// WorkerRuns counts each completed run of a worker's per-tenant pass.
	WorkerRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cqc_worker_runs_total",
			Help: "Number of completed worker passes, by worker and tenant.",
		},
		[]string{"worker", "tenant_id"},
	)

	// WorkerErrors counts failures encountered during a worker's pass.
	WorkerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cqc_worker_errors_total",
			Help: "Number of errors encountered by background workers, by worker and tenant.",
		},
		[]string{"worker", "tenant_id"},
	)
)

func init() {
	prometheus.MustRegister(WorkerRuns, WorkerErrors)
}
