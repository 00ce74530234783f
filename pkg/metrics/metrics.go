package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	BookingsCreated   *prometheus.CounterVec
	BookingsCancelled *prometheus.CounterVec
	SlotsBlocked      *prometheus.CounterVec
	DaysCancelled     *prometheus.CounterVec
}

// New регистрирует коллекторы в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует коллекторы в переданном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"business"}),
		BookingsCancelled: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of cancelled bookings",
			ConstLabels: constLabels,
		}, []string{"business"}),
		SlotsBlocked: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slots_blocked_total",
			Help:        "Total number of blocked time slots",
			ConstLabels: constLabels,
		}, []string{"business"}),
		DaysCancelled: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "days_cancelled_total",
			Help:        "Total number of cancelled days",
			ConstLabels: constLabels,
		}, []string{"business"}),
	}
}

// IncBookingCreated безопасен для nil получателя (метрики выключены)
func (m *Metrics) IncBookingCreated(business string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(business).Inc()
}

// IncBookingCancelled безопасен для nil получателя
func (m *Metrics) IncBookingCancelled(business string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.BookingsCancelled.WithLabelValues(business).Add(float64(n))
}

// IncSlotsBlocked безопасен для nil получателя
func (m *Metrics) IncSlotsBlocked(business string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SlotsBlocked.WithLabelValues(business).Add(float64(n))
}

// IncDayCancelled безопасен для nil получателя
func (m *Metrics) IncDayCancelled(business string) {
	if m == nil {
		return
	}
	m.DaysCancelled.WithLabelValues(business).Inc()
}
