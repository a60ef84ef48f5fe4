package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics conta e cronometra as chamadas aos serviços remotos
type UpstreamMetrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewUpstreamMetrics cria e registra os coletores no registerer informado
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	m := &UpstreamMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_upstream_requests_total",
			Help: "requisições aos upstreams por serviço, operação e resultado",
		}, []string{"service", "operation", "outcome"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_upstream_request_duration_seconds",
			Help:    "latência das requisições aos upstreams",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),
	}
	reg.MustRegister(m.Requests, m.Latency)
	return m
}

// Observe tem a assinatura de upstream.RequestObserver
func (m *UpstreamMetrics) Observe(service, operation, outcome string, elapsed time.Duration) {
	m.Requests.WithLabelValues(service, operation, outcome).Inc()
	m.Latency.WithLabelValues(service, operation).Observe(elapsed.Seconds())
}
