// Package metrics holds the Prometheus collectors of the web service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/louisbranch/galien/internal/registration"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the web service.
type Metrics struct {
	registry *prometheus.Registry

	SubmissionsTotal    *prometheus.CounterVec
	SubmissionsInFlight prometheus.Gauge
	SubmissionDuration  prometheus.Histogram
	StepTransitions     *prometheus.CounterVec
	ParticipantActions  *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "galien_registration_submissions_total",
			Help: "Registration submission attempts by outcome",
		}, []string{"outcome"}),
		SubmissionsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "galien_registration_submissions_in_flight",
			Help: "Registration submissions currently running",
		}),
		SubmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "galien_registration_submission_duration_seconds",
			Help:    "Time spent in the registration submit effect",
			Buckets: prometheus.DefBuckets,
		}),
		StepTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "galien_registration_step_transitions_total",
			Help: "Registration form step changes",
		}, []string{"from", "to"}),
		ParticipantActions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "galien_participant_actions_total",
			Help: "Organizer actions applied to participants",
		}, []string{"action", "result"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// StepChanged implements registration.Observer.
func (m *Metrics) StepChanged(from int, to int) {
	m.StepTransitions.WithLabelValues(strconv.Itoa(from), strconv.Itoa(to)).Inc()
}

// SubmissionStarted implements registration.Observer.
func (m *Metrics) SubmissionStarted() {
	m.SubmissionsInFlight.Inc()
}

// SubmissionStopped implements registration.Observer.
func (m *Metrics) SubmissionStopped() {
	m.SubmissionsInFlight.Dec()
}

// SubmissionFinished implements registration.Observer.
func (m *Metrics) SubmissionFinished(outcome registration.Outcome, elapsed time.Duration) {
	m.SubmissionsTotal.WithLabelValues(string(outcome)).Inc()
	switch outcome {
	case registration.OutcomeSucceeded, registration.OutcomeFailed:
		m.SubmissionDuration.Observe(elapsed.Seconds())
	}
}

// ParticipantAction records an organizer action result. A nil receiver
// records nothing.
func (m *Metrics) ParticipantAction(action string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ParticipantActions.WithLabelValues(action, result).Inc()
}

var _ registration.Observer = (*Metrics)(nil)
