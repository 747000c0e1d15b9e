package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for one processing run.
type Metrics struct {
	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionsDiscarded *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsFrozen  prometheus.Counter
}

// New creates all counters and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payengine_transactions_processed_total",
			Help: "Total number of transactions applied to an account",
		}, []string{"type"}),
		TransactionsDiscarded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payengine_transactions_discarded_total",
			Help: "Total number of transactions discarded without effect",
		}, []string{"reason"}),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_created_total",
			Help: "Total number of client accounts created",
		}),
		AccountsFrozen: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_frozen_total",
			Help: "Total number of accounts frozen by a chargeback",
		}),
	}
}
