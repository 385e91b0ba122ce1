package client

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const metricsJob = "lazer_admin"

// Metrics collects the metrics of one tool invocation.
type Metrics struct {
	Updates     *prometheus.CounterVec
	Duration    prometheus.Gauge
	LastSuccess prometheus.Gauge
	ExpiresAt   *prometheus.GaugeVec
	registry    *prometheus.Registry
}

// NewMetrics returns metrics registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lazer",
			Subsystem: "admin",
			Name:      "update_total",
			Help:      "Trusted signer updates by outcome",
		}, []string{"outcome"}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lazer",
			Subsystem: "admin",
			Name:      "update_duration_seconds",
			Help:      "Time taken to send and confirm the last update",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lazer",
			Subsystem: "admin",
			Name:      "last_success_timestamp_seconds",
			Help:      "Time of the last confirmed update",
		}),
		ExpiresAt: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "lazer",
			Subsystem: "admin",
			Name:      "trusted_signer_expiry_timestamp_seconds",
			Help:      "Expiry requested for a trusted signer",
		}, []string{"signer"}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Updates, m.Duration, m.LastSuccess, m.ExpiresAt)
	return m
}

// ObserveUpdate records the outcome of one update.
func (m *Metrics) ObserveUpdate(signer string, expiresAt int64, took time.Duration, err error) {
	m.Duration.Set(took.Seconds())
	if err != nil {
		m.Updates.WithLabelValues("error").Inc()
		return
	}
	m.Updates.WithLabelValues("ok").Inc()
	m.LastSuccess.SetToCurrentTime()
	m.ExpiresAt.WithLabelValues(signer).Set(float64(expiresAt))
}

// Push sends the collected metrics to a Prometheus Pushgateway.
func (m *Metrics) Push(ctx context.Context, gateway string) error {
	return push.New(gateway, metricsJob).Gatherer(m.registry).PushContext(ctx)
}
