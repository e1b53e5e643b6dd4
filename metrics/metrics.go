// Package metrics exposes Prometheus counters for budget activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalsComputed counts totals calculations served to clients.
	TotalsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budget_totals_computed_total",
		Help: "Number of budget totals computed.",
	})

	// Exports counts generated exports by format.
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_exports_total",
		Help: "Number of budget exports generated, by format.",
	}, []string{"format"})

	// StoreOperations counts gateway calls by operation and result.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_store_operations_total",
		Help: "Number of persistence operations, by operation and result.",
	}, []string{"operation", "result"})
)

// ObserveStore records the outcome of one gateway call.
func ObserveStore(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(operation, result).Inc()
}
