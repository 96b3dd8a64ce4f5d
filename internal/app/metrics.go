package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiz",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Handled HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quiz",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	dbUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "quiz",
		Subsystem: "db",
		Name:      "up",
		Help:      "1 when the last database health probe succeeded.",
	})
)
