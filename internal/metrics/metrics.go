package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeLogin           = "login"
	OutcomeLogout          = "logout"
	OutcomeValidationError = "validation_error"
	OutcomeNotFound        = "not_found"
	OutcomeStoreError      = "store_error"
	OutcomeServerError     = "server_error"
)

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roomscan",
		Name:      "scans_total",
		Help:      "Room scans handled, by outcome.",
	}, []string{"outcome"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "roomscan",
		Name:      "scan_duration_seconds",
		Help:      "Time spent handling a room scan.",
		Buckets:   prometheus.DefBuckets,
	})
)
