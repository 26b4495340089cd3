package metrics

import (
	"net/http"
	"strconv"
	"time"

	"pizza-orders-be/internal/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for the server and the order store.
type Metrics struct {
	registry *prometheus.Registry

	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	StatusChanges *prometheus.CounterVec
	ViewChanges   *prometheus.CounterVec
}

var _ order.Recorder = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizza",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pizza",
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"route"}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizza",
			Subsystem: "orders",
			Name:      "status_changes_total",
			Help:      "Order status updates by previous and new status.",
		}, []string{"from", "to"}),
		ViewChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pizza",
			Subsystem: "orders",
			Name:      "view_changes_total",
			Help:      "Search, filter, sort and reset operations on the order view.",
		}, []string{"operation"}),
	}

	m.registry.MustRegister(m.Requests, m.LatencyMS, m.StatusChanges, m.ViewChanges)
	return m
}

func (m *Metrics) ObserveStatusChange(from, to order.OrderStatus) {
	m.StatusChanges.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) ObserveViewChange(operation string) {
	m.ViewChanges.WithLabelValues(operation).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Instrument counts and times requests under the given route label.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		m.Requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	})
}
