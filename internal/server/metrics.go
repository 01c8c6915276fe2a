package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nzaccagnino/studydesk/internal/db"
)

type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	binWrites       *prometheus.CounterVec
}

func NewMetrics(database *db.DB) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		binWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bin_writes_total",
				Help: "Bins created, overwritten and deleted",
			},
			[]string{"op"},
		),
	}

	binsStored := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "bins_stored",
			Help: "Number of bins currently stored",
		},
		func() float64 {
			n, err := database.CountBins(context.Background())
			if err != nil {
				return 0
			}
			return float64(n)
		},
	)

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		m.requestsTotal, m.requestDuration, m.binWrites, binsStored,
	)
	return m
}

// Middleware records every request under its route pattern, so bin ids do
// not explode the label space.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		m.requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		m.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
