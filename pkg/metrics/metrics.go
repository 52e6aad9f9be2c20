package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// View engine metrics
	ViewComputations *prometheus.CounterVec
	DisplayedRows    *prometheus.GaugeVec

	// Mutation metrics
	Mutations *prometheus.CounterVec

	// Remote API metrics
	RemoteRequests *prometheus.CounterVec
	RemoteLatency  *prometheus.HistogramVec

	// Event metrics
	EventsPublished *prometheus.CounterVec

	// Session metrics
	ActiveSessions prometheus.Gauge
}

// New creates all metrics and registers them with reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path"}),

		ViewComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "computations_total",
			Help:      "Derived view requests by screen and whether the memoized result was reused",
		}, []string{"screen", "result"}),
		DisplayedRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "displayed_rows",
			Help:      "Rows in the last derived view per screen",
		}, []string{"screen"}),

		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "mutations_total",
			Help:      "Mutations by entity, action and outcome",
		}, []string{"entity", "action", "outcome"}),

		RemoteRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Requests sent to the restaurant API",
		}, []string{"method", "status"}),
		RemoteLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Latency of restaurant API requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method"}),

		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Mutation events published to the broker",
		}, []string{"outcome"}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Current number of cached console sessions",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) ObserveView(screen string, memoized bool, rows int) {
	if m == nil {
		return
	}
	result := "computed"
	if memoized {
		result = "memoized"
	}
	m.ViewComputations.WithLabelValues(screen, result).Inc()
	m.DisplayedRows.WithLabelValues(screen).Set(float64(rows))
}

func (m *Metrics) ObserveMutation(entity, action string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Mutations.WithLabelValues(entity, action, outcome).Inc()
}

func (m *Metrics) ObserveRemote(method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RemoteRequests.WithLabelValues(method, status).Inc()
	m.RemoteLatency.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) ObserveEvent(err error) {
	if m == nil {
		return
	}
	outcome := "published"
	if err != nil {
		outcome = "failed"
	}
	m.EventsPublished.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SessionOpened() {
	if m != nil {
		m.ActiveSessions.Inc()
	}
}

func (m *Metrics) SessionClosed() {
	if m != nil {
		m.ActiveSessions.Dec()
	}
}
