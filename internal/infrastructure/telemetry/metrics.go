package telemetry

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "travel"

// Metrics holds the Prometheus collectors of the service. Each instance owns
// its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	paymentsCreated  *prometheus.CounterVec
	receiptsRecorded *prometheus.CounterVec
	bookingsCanceled prometheus.Counter
	domainEvents     *prometheus.CounterVec
	slowQueries      *prometheus.CounterVec
}

// NewMetrics registers every collector on a fresh registry, together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		paymentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_created_total",
			Help:      "Payments created by sale source type.",
		}, []string{"source_type"}),
		receiptsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_recorded_total",
			Help:      "Receipts recorded by resulting payment status.",
		}, []string{"status"}),
		bookingsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_canceled_total",
			Help:      "Haj/Umrah bookings canceled, directly or by campaign cancellation.",
		}),
		domainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain events published by type.",
		}, []string{"type"}),
		slowQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_slow_queries_total",
			Help:      "Queries slower than the configured threshold, by table.",
		}, []string{"table"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpRequestDuration,
		m.httpInFlight,
		m.paymentsCreated,
		m.receiptsRecorded,
		m.bookingsCanceled,
		m.domainEvents,
		m.slowQueries,
	)
	return m
}

// RegisterDB exports connection pool statistics of db
func (m *Metrics) RegisterDB(db *sql.DB, name string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one finished request
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// InFlight returns the in-flight request gauge
func (m *Metrics) InFlight() prometheus.Gauge {
	return m.httpInFlight
}

// PaymentCreated counts a payment spawned by a sale
func (m *Metrics) PaymentCreated(sourceType string) {
	m.paymentsCreated.WithLabelValues(sourceType).Inc()
}

// ReceiptRecorded counts a receipt
func (m *Metrics) ReceiptRecorded(status string) {
	m.receiptsRecorded.WithLabelValues(status).Inc()
}

// BookingCanceled counts a canceled booking
func (m *Metrics) BookingCanceled() {
	m.bookingsCanceled.Inc()
}

// DomainEvent counts a published event
func (m *Metrics) DomainEvent(eventType string) {
	m.domainEvents.WithLabelValues(eventType).Inc()
}

// SlowQuery counts a slow query on table
func (m *Metrics) SlowQuery(table string) {
	if table == "" {
		table = "unknown"
	}
	m.slowQueries.WithLabelValues(table).Inc()
}
