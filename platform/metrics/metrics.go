// Package metrics exposes Prometheus collectors for the relay.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the relay reports. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	webhookEvents  *prometheus.CounterVec
	smsDeliveries  *prometheus.CounterVec
	spamCalls      *prometheus.CounterVec
	reportFlushes  prometheus.Counter
	operatorsGauge prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receptionist",
			Name:      "webhook_events_total",
			Help:      "Voice platform webhook events received, by event type.",
		}, []string{"type"}),
		smsDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receptionist",
			Name:      "sms_deliveries_total",
			Help:      "Outbound text messages attempted, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		spamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "receptionist",
			Name:      "spam_calls_total",
			Help:      "Calls classified as spam, by operator.",
		}, []string{"operator"}),
		reportFlushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "receptionist",
			Name:      "spam_report_flushes_total",
			Help:      "Daily spam report runs.",
		}),
		operatorsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "receptionist",
			Name:      "operators_loaded",
			Help:      "Operators in the loaded roster.",
		}),
	}
	reg.MustRegister(
		m.webhookEvents,
		m.smsDeliveries,
		m.spamCalls,
		m.reportFlushes,
		m.operatorsGauge,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WebhookEvent counts one inbound voice-platform event by type.
func (m *Metrics) WebhookEvent(eventType string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType).Inc()
}

// SMSDelivery counts one outbound message of the given kind as sent or failed.
func (m *Metrics) SMSDelivery(kind string, ok bool) {
	if m == nil {
		return
	}
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	m.smsDeliveries.WithLabelValues(kind, outcome).Inc()
}

// SpamCall counts a call the assistant classified as spam.
func (m *Metrics) SpamCall(operatorID string) {
	if m == nil {
		return
	}
	m.spamCalls.WithLabelValues(operatorID).Inc()
}

// ReportFlush counts one run of the daily spam report.
func (m *Metrics) ReportFlush() {
	if m == nil {
		return
	}
	m.reportFlushes.Inc()
}

// OperatorsLoaded records how many operators the registry holds.
func (m *Metrics) OperatorsLoaded(n int) {
	if m == nil {
		return
	}
	m.operatorsGauge.Set(float64(n))
}
