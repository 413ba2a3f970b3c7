package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_api_requests_total",
			Help: "Total number of requests sent to the recipe catalog API",
		},
		[]string{"op", "outcome"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_api_request_duration_seconds",
			Help:    "Recipe catalog API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
