package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "store_mutations_total", Help: "Store mutations by operation and outcome"},
		[]string{"op", "outcome"},
	)
	PersistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideshare", Name: "store_persist_failures_total", Help: "Failed writes of the store document"})
	StateResetsTotal     = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "store_state_resets_total", Help: "Loads that discarded persisted state"},
		[]string{"reason"},
	)
)
