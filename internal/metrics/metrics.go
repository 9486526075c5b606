package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Intents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "intents_total",
		Help:      "Utterances handled, by matched intent.",
	}, []string{"intent"})

	Verdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "verdicts_total",
		Help:      "Graded answers, by topic and outcome.",
	}, []string{"topic", "outcome"})

	Failures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "failures_total",
		Help:      "Turns answered with the generic apology, by error code.",
	}, []string{"code"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quiz",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
