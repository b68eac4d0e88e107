// Package metrics содержит prometheus-метрики витрины.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы операций авторизации.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeUserExists         = "user_exists"
	OutcomeFailed             = "failed"
	OutcomeInProgress         = "in_progress"
)

// Решения защиты маршрутов.
const (
	DecisionAllow    = "allow"
	DecisionRedirect = "redirect"
)

// Metrics объединяет счётчики и гистограммы витрины.
type Metrics struct {
	AuthAttempts      *prometheus.CounterVec
	GuardDecisions    *prometheus.CounterVec
	DirectoryDuration *prometheus.HistogramVec
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "auth_attempts_total",
			Help:      "Login, registration and logout attempts by outcome.",
		}, []string{"operation", "outcome"}),
		GuardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "guard_decisions_total",
			Help:      "Route guard decisions for incoming requests.",
		}, []string{"decision"}),
		DirectoryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "directory_request_duration_seconds",
			Help:      "Latency of calls to the user directory.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.AuthAttempts, m.GuardDecisions, m.DirectoryDuration)
	return m
}

// AuthAttempt учитывает попытку операции авторизации.
func (m *Metrics) AuthAttempt(operation, outcome string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(operation, outcome).Inc()
}

// GuardDecision учитывает решение защиты маршрутов.
func (m *Metrics) GuardDecision(decision string) {
	if m == nil {
		return
	}
	m.GuardDecisions.WithLabelValues(decision).Inc()
}

// DirectoryCall учитывает длительность обращения к каталогу.
func (m *Metrics) DirectoryCall(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailed
	}
	m.DirectoryDuration.WithLabelValues(operation, outcome).Observe(time.Since(started).Seconds())
}
