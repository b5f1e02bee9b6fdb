package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for login attempts
const (
	LoginSuccess       = "success"
	LoginRejected      = "rejected"
	LoginForbiddenRole = "forbidden_role"
	LoginError         = "error"
)

// Outcome labels for session revalidation
const (
	RevalidationValid       = "valid"
	RevalidationInvalidRole = "invalid_role"
	RevalidationRejected    = "rejected"
	RevalidationNoToken     = "no_token"
	RevalidationStoreError  = "store_error"
)

// Metrics holds all Prometheus metrics for adminctl.
//
// All recording methods accept a nil receiver so callers never need to
// check whether metrics are enabled.
type Metrics struct {
	// Session metrics
	LoginAttempts        *prometheus.CounterVec
	SessionRevalidations *prometheus.CounterVec
	Logouts              prometheus.Counter

	// Permission metrics
	PermissionChecks *prometheus.CounterVec

	// Backend API metrics
	APIRequests        *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Error metrics (by error code from structured errors)
	CommandErrors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminctl_login_attempts_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		SessionRevalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminctl_session_revalidations_total",
				Help: "Total number of stored-token revalidations by outcome",
			},
			[]string{"outcome"},
		),
		Logouts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "adminctl_logouts_total",
				Help: "Total number of logouts",
			},
		),
		PermissionChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminctl_permission_checks_total",
				Help: "Total number of permission checks by permission and result",
			},
			[]string{"permission", "allowed"},
		),
		APIRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminctl_api_requests_total",
				Help: "Total number of backend API requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adminctl_api_request_duration_seconds",
				Help:    "Backend API request latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "endpoint"},
		),
		CommandErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminctl_command_errors_total",
				Help: "Total number of failed commands by error code",
			},
			[]string{"command", "code"},
		),
	}
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

// RecordRevalidation counts a stored-token revalidation.
func (m *Metrics) RecordRevalidation(outcome string) {
	if m == nil {
		return
	}
	m.SessionRevalidations.WithLabelValues(outcome).Inc()
}

// RecordLogout counts a logout.
func (m *Metrics) RecordLogout() {
	if m == nil {
		return
	}
	m.Logouts.Inc()
}

// RecordPermissionCheck counts a permission check.
func (m *Metrics) RecordPermissionCheck(permission string, allowed bool) {
	if m == nil {
		return
	}
	m.PermissionChecks.WithLabelValues(permission, strconv.FormatBool(allowed)).Inc()
}

// RecordAPIRequest counts a backend request and observes its latency.
// A status of 0 means the request never got a response.
func (m *Metrics) RecordAPIRequest(method, endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.APIRequests.WithLabelValues(method, endpoint, label).Inc()
	m.APIRequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// RecordCommandError counts a failed command.
func (m *Metrics) RecordCommandError(command, code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.CommandErrors.WithLabelValues(command, code).Inc()
}
