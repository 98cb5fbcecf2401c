// Package metrics exposes the process-wide Prometheus instruments served
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RatingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "judging_ratings_submitted_total",
		Help: "Number of rating batches accepted.",
	})

	RankingsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "judging_rankings_computed_total",
		Help: "Number of event ranking computations served.",
	})

	WinnersApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "judging_winners_approved_total",
		Help: "Number of winner proposals approved.",
	})

	WinnersAnnounced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "judging_winners_announced_total",
		Help: "Number of winner announcement calls that transitioned rows.",
	})
)
