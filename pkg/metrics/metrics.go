package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingsTotal       *prometheus.CounterVec
	SlotsServedTotal    *prometheus.CounterVec
}

// New создает и регистрирует метрики в reg.
// В main передается prometheus.DefaultRegisterer, в тестах - prometheus.NewRegistry().
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "consultation_bookings_total",
				Help:        "Booking attempts by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		SlotsServedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "consultation_slots_served_total",
				Help:        "Slots returned to clients by availability",
				ConstLabels: constLabels,
			},
			[]string{"available"},
		),
	}

	reg.MustRegister(m.HTTPRequestsTotal, m.HTTPRequestDuration, m.BookingsTotal, m.SlotsServedTotal)
	return m
}

// Booking outcomes
const (
	OutcomeCreated   = "created"
	OutcomeSlotTaken = "slot_taken"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// ObserveBooking увеличивает счетчик бронирований. Безопасен для nil.
func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSlots учитывает выданные клиентам слоты. Безопасен для nil.
func (m *Metrics) ObserveSlots(available, taken int) {
	if m == nil {
		return
	}
	m.SlotsServedTotal.WithLabelValues("true").Add(float64(available))
	m.SlotsServedTotal.WithLabelValues("false").Add(float64(taken))
}
