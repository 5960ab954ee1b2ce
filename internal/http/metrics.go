package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	EntriesTotal    *prometheus.CounterVec
	RateLimitHits   prometheus.Counter
	SuspiciousHits  prometheus.Counter
	AdviceRequests  *prometheus.CounterVec
}

// NewMetrics registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contas_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contas_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		EntriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contas_ledger_entries_total",
			Help: "Ledger entries added or deleted, by kind and action.",
		}, []string{"kind", "action"}),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "contas_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter.",
		}),
		SuspiciousHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "contas_suspicious_requests_total",
			Help: "Requests flagged as suspicious and rejected.",
		}),
		AdviceRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contas_advice_requests_total",
			Help: "Advice generations by outcome.",
		}, []string{"outcome"}),
	}
}
