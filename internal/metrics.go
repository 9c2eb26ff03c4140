package internal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "itorg"

// Metrics provides Prometheus metrics collection on a private registry
type Metrics struct {
	reqTotal       *prometheus.CounterVec
	reqLatency     *prometheus.HistogramVec
	mutations      *prometheus.CounterVec
	importedAssets prometheus.Counter
	storeUp        prometheus.Gauge
	registry       *prometheus.Registry
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		reqTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		reqLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "Request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "mutations_total",
				Help:      "Successful create, update and delete operations",
			},
			[]string{"resource", "op"},
		),
		importedAssets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "imported_assets_total",
			Help:      "Assets stored by the bulk import",
		}),
		storeUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "store_up",
			Help:      "1 if the last health check reached the database",
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.reqTotal, m.reqLatency, m.mutations, m.importedAssets, m.storeUp,
		collectors.NewGoCollector(),
	)
	return m
}

// Middleware records request count and latency labelled by chi route
// pattern, so /projects/1 and /projects/2 share a series.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}
			status := strconv.Itoa(code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) mutated(resource, op string) {
	m.mutations.WithLabelValues(resource, op).Inc()
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
