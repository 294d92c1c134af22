// Package observability holds the persistence-layer Prometheus collectors.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	transactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "session",
		Name:      "transactions_total",
		Help:      "Session transactions by outcome (commit, rollback, begin_failed, commit_failed).",
	}, []string{"outcome"})
	persisted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "store",
		Name:      "records_saved_total",
		Help:      "Records written by the stores, by entity and operation (insert, update).",
	}, []string{"entity", "op"})
)

func init() {
	prometheus.MustRegister(transactions, persisted)
}

// RecordTransaction counts a finished session transaction.
func RecordTransaction(outcome string) {
	transactions.WithLabelValues(outcome).Inc()
}

// RecordSaved counts a row written by a store.
func RecordSaved(entity, op string) {
	persisted.WithLabelValues(entity, op).Inc()
}
