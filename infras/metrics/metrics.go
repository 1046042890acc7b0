package metrics

import (
	"net/http"
	"strconv"
	"time"

	"clinic/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	subsystemScheduling = "scheduling"
	subsystemHTTP       = "http"
)

// Metrics exposes scheduling counters on a private registry. A nil *Metrics is a no-op.
type Metrics struct {
	registry            *prometheus.Registry
	bookingsTotal       *prometheus.CounterVec
	slotConflicts       *prometheus.CounterVec
	wizardSteps         *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	availabilityLatency prometheus.Histogram
	requestsTotal       *prometheus.CounterVec
	requestLatency      *prometheus.HistogramVec
}

func New(cfg *config.Config) *Metrics {
	if !cfg.Metrics.Enable {
		return nil
	}

	return NewWithRegistry(cfg.Metrics.Namespace, prometheus.NewRegistry())
}

func NewWithRegistry(namespace string, reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduling,
			Name:      "bookings_created_total",
			Help:      "Bookings persisted, by source",
		}, []string{"source"}),
		slotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduling,
			Name:      "slot_conflicts_total",
			Help:      "Writes rejected because the slot was already held",
		}, []string{"operation"}),
		wizardSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduling,
			Name:      "wizard_steps_total",
			Help:      "Booking wizard transitions, by target step",
		}, []string{"step"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduling,
			Name:      "notifications_total",
			Help:      "Booking notifications published, by result",
		}, []string{"result"}),
		availabilityLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemScheduling,
			Name:      "availability_seconds",
			Help:      "Time spent computing a day's free slots",
			Buckets:   prometheus.DefBuckets,
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemHTTP,
			Name:      "requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemHTTP,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.bookingsTotal,
		m.slotConflicts,
		m.wizardSteps,
		m.notifications,
		m.availabilityLatency,
		m.requestsTotal,
		m.requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveBookingCreated(source string) {
	if m == nil {
		return
	}

	m.bookingsTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveSlotConflict(operation string) {
	if m == nil {
		return
	}

	m.slotConflicts.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveWizardStep(step string) {
	if m == nil {
		return
	}

	m.wizardSteps.WithLabelValues(step).Inc()
}

// ObserveNotification counts a publish attempt; result is "sent" or "failed".
func (m *Metrics) ObserveNotification(result string) {
	if m == nil {
		return
	}

	m.notifications.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAvailability(started time.Time) {
	if m == nil {
		return
	}

	m.availabilityLatency.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, code int, started time.Time) {
	if m == nil {
		return
	}

	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
