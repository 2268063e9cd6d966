// Package metrics registra métricas Prometheus de las llamadas al API remoto.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	flowResults *prometheus.CounterVec
}

// New crea un registry propio (no el global) para que los tests puedan instanciar varios.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dulcedosis",
			Name:      "api_requests_total",
			Help:      "Requests al API remoto por método y status (0 = sin respuesta).",
		}, []string{"method", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dulcedosis",
			Name:      "api_request_duration_seconds",
			Help:      "Latencia de requests al API remoto.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		flowResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dulcedosis",
			Name:      "flow_results_total",
			Help:      "Resultados de flujos de UI (registro, login, eliminación).",
		}, []string{"flow", "result"}),
	}

	reg.MustRegister(m.apiRequests, m.apiLatency, m.flowResults)
	return m
}

// ObserveAPI tiene la firma de httpclient.Observer.
func (m *Metrics) ObserveAPI(method, _ string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.apiLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) FlowResult(flow, result string) {
	if m == nil {
		return
	}
	m.flowResults.WithLabelValues(flow, result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry se expone para tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
