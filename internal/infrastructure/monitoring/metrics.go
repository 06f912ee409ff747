package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	AccountOperationsTotal  *prometheus.CounterVec
	OrphanedAccountsRemoved prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "accounts_service_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		AccountOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_service_account_operations_total",
				Help: "Total number of account lifecycle operations, by operation and outcome.",
			},
			[]string{"operation", "status"},
		),
		OrphanedAccountsRemoved: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_service_orphaned_accounts_removed_total",
				Help: "Total number of orphaned account rows removed by the reconcile job.",
			},
		),
	}
)

func RecordAccountOperation(operation, status string) {
	Business.AccountOperationsTotal.WithLabelValues(operation, status).Inc()
}

func RecordOrphanedAccountRemoved() {
	Business.OrphanedAccountsRemoved.Inc()
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}
