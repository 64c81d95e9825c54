package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SlipsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parlay_slips_saved_total",
		Help: "Slips accepted by the ledger.",
	})

	SlipsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parlay_slips_rejected_total",
		Help: "Slip saves rejected, by reason.",
	}, []string{"reason"})

	SlipsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parlay_slips_settled_total",
		Help: "Slips settled by the worker, by terminal status.",
	}, []string{"status"})
)
