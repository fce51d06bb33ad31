package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса.
// Методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBTxRetries         *prometheus.CounterVec

	BookingsCreated   *prometheus.CounterVec
	SlotConflicts     *prometheus.CounterVec
	WebhookEvents     *prometheus.CounterVec
	HoldsExpired      *prometheus.CounterVec
	NotificationsSent *prometheus.CounterVec
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBTxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		SlotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Booking attempts rejected because a slot was taken",
			ConstLabels: constLabels,
		}, []string{"stage"}),
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_webhook_events_total",
			Help:        "Payment webhook events by type and outcome",
			ConstLabels: constLabels,
		}, []string{"type", "result"}),
		HoldsExpired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_holds_expired_total",
			Help:        "Pending or held bookings released by the sweep",
			ConstLabels: constLabels,
		}, []string{"trigger"}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_sent_total",
			Help:        "Notification emails by kind and outcome",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTxRetries,
		m.BookingsCreated,
		m.SlotConflicts,
		m.WebhookEvents,
		m.HoldsExpired,
		m.NotificationsSent,
	)

	return m
}

func (m *Metrics) IncBookingCreated(kind string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncSlotConflict(stage string) {
	if m == nil {
		return
	}
	m.SlotConflicts.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncWebhookEvent(eventType, result string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(eventType, result).Inc()
}

func (m *Metrics) AddHoldsExpired(trigger string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.HoldsExpired.WithLabelValues(trigger).Add(float64(n))
}

func (m *Metrics) IncNotification(kind, result string) {
	if m == nil {
		return
	}
	m.NotificationsSent.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) IncTxRetry(reason string) {
	if m == nil {
		return
	}
	m.DBTxRetries.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
