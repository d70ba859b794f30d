package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RequestDuration *prometheus.HistogramVec

	UsersCreated                 prometheus.Counter
	CampsCreated                 prometheus.Counter
	RegistrationsCreated         prometheus.Counter
	DuplicateRegistrations       prometheus.Counter
	RegistrationsCancelled       prometheus.Counter
	RegistrationsConfirmed       prometheus.Counter
	ParticipantIncrementFailures prometheus.Counter
	PaymentsRecorded             prometheus.Counter
	PaymentUpdatesUnmatched      prometheus.Counter
	PaymentIntents               *prometheus.CounterVec
	FeedbackCreated              prometheus.Counter
	RateLimited                  *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on reg. Tests pass a fresh
// prometheus.NewRegistry so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcms_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_users_created_total",
			Help: "Total number of users created in the system",
		}),
		CampsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_camps_created_total",
			Help: "Total number of camps created",
		}),
		RegistrationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_registrations_created_total",
			Help: "Total number of camp registrations created",
		}),
		DuplicateRegistrations: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_registrations_duplicate_total",
			Help: "Registration attempts rejected because the user already registered for the camp",
		}),
		RegistrationsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_registrations_cancelled_total",
			Help: "Total number of registrations cancelled",
		}),
		RegistrationsConfirmed: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_registrations_confirmed_total",
			Help: "Total number of confirm operations applied",
		}),
		ParticipantIncrementFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_participant_count_increment_failures_total",
			Help: "Registrations whose camp participant count could not be incremented",
		}),
		PaymentsRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_payments_recorded_total",
			Help: "Total number of payment records appended",
		}),
		PaymentUpdatesUnmatched: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_payment_registration_updates_unmatched_total",
			Help: "Payments whose registration status update matched no registration",
		}),
		PaymentIntents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mcms_payment_intents_total",
			Help: "Payment intents requested from the gateway by outcome",
		}, []string{"outcome"}),
		FeedbackCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "mcms_feedback_created_total",
			Help: "Total number of feedback entries created",
		}),
		RateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mcms_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter by endpoint class",
		}, []string{"class"}),
	}
}

// IncrementUsersCreated increments the users created counter by 1
func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

// IncrementCampsCreated increments the camps created counter by 1
func (m *Metrics) IncrementCampsCreated() {
	if m == nil {
		return
	}
	m.CampsCreated.Inc()
}

func (m *Metrics) IncrementFeedbackCreated() {
	if m == nil {
		return
	}
	m.FeedbackCreated.Inc()
}

func (m *Metrics) IncrementRateLimited(class string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(class).Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (m *Metrics) IncrementRegistrationsCreated() {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Inc()
}

func (m *Metrics) IncrementDuplicateRegistrations() {
	if m == nil {
		return
	}
	m.DuplicateRegistrations.Inc()
}

func (m *Metrics) IncrementRegistrationsCancelled() {
	if m == nil {
		return
	}
	m.RegistrationsCancelled.Inc()
}

func (m *Metrics) IncrementRegistrationsConfirmed() {
	if m == nil {
		return
	}
	m.RegistrationsConfirmed.Inc()
}

func (m *Metrics) IncrementParticipantIncrementFailures() {
	if m == nil {
		return
	}
	m.ParticipantIncrementFailures.Inc()
}

func (m *Metrics) IncrementPaymentsRecorded() {
	if m == nil {
		return
	}
	m.PaymentsRecorded.Inc()
}

func (m *Metrics) IncrementPaymentUpdatesUnmatched() {
	if m == nil {
		return
	}
	m.PaymentUpdatesUnmatched.Inc()
}

// IncrementPaymentIntents counts gateway calls; outcome is "created" or "failed".
func (m *Metrics) IncrementPaymentIntents(outcome string) {
	if m == nil {
		return
	}
	m.PaymentIntents.WithLabelValues(outcome).Inc()
}
