package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsCreated       *prometheus.CounterVec
	transactionsRejected      *prometheus.CounterVec
	transactionsDeleted       prometheus.Counter
	transactionAmount         *prometheus.HistogramVec
	transactionCreateDuration prometheus.Histogram
	reportsGenerated          prometheus.Counter
	reportDuration            prometheus.Histogram
	reportOrphanedRows        prometheus.Counter
	authenticationEventsTotal *prometheus.CounterVec
}

// NewPrometheusMetrics registers the service metrics with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		transactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_created_total",
				Help: "Total number of transactions created",
			},
			[]string{"type"},
		),
		transactionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_rejected_total",
				Help: "Total number of rejected transaction create requests",
			},
			[]string{"reason"},
		),
		transactionsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transactions_deleted_total",
				Help: "Total number of transactions deleted",
			},
		),
		transactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_amount_minor_units",
				Help:    "Created transaction amounts in the smallest currency unit",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"type"},
		),
		transactionCreateDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transaction_create_duration_milliseconds",
				Help:    "Transaction create duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		reportsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "category_reports_total",
				Help: "Total number of category reports generated",
			},
		),
		reportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "category_report_duration_seconds",
				Help:    "Category report duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		reportOrphanedRows: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "report_orphaned_transactions_total",
				Help: "Transactions skipped by reports because their category did not resolve",
			},
		),
		authenticationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "transaction.created":
		m.transactionsCreated.WithLabelValues(tags["type"]).Inc()
	case "transaction.rejected":
		if reason := tags["reason"]; reason != "" {
			m.transactionsRejected.WithLabelValues(reason).Inc()
		}
	case "transaction.deleted":
		m.transactionsDeleted.Inc()
	case "report.generated":
		m.reportsGenerated.Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.create":
		m.transactionCreateDuration.Observe(float64(duration.Milliseconds()))
	case "report.category":
		m.reportDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "transaction.amount":
		m.transactionAmount.WithLabelValues(tags["type"]).Observe(value)
	case "report.orphaned_rows":
		if value > 0 {
			m.reportOrphanedRows.Add(value)
		}
	}
}
