package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherValues(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				values[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return values
}

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(reg)

	metrics.IncrementCounter("transaction.created", map[string]string{"type": "expense"})
	metrics.IncrementCounter("transaction.created", map[string]string{"type": "income"})
	metrics.IncrementCounter("transaction.rejected", map[string]string{"reason": "validation"})
	metrics.IncrementCounter("transaction.rejected", nil)
	metrics.IncrementCounter("transaction.deleted", nil)
	metrics.IncrementCounter("report.generated", nil)
	metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "token_invalid"})
	metrics.IncrementCounter("unknown.metric", nil)
	metrics.RecordGauge("transaction.amount", 4250, map[string]string{"type": "expense"})
	metrics.RecordGauge("report.orphaned_rows", 3, nil)
	metrics.RecordGauge("report.orphaned_rows", 0, nil)
	metrics.RecordProcessingTime("transaction.create", 15*time.Millisecond)
	metrics.RecordProcessingTime("report.category", 20*time.Millisecond)

	values := gatherValues(t, reg)
	assert.Equal(t, float64(2), values["transactions_created_total"])
	assert.Equal(t, float64(1), values["transactions_rejected_total"])
	assert.Equal(t, float64(1), values["transactions_deleted_total"])
	assert.Equal(t, float64(1), values["category_reports_total"])
	assert.Equal(t, float64(1), values["authentication_events_total"])
	assert.Equal(t, float64(3), values["report_orphaned_transactions_total"])
	assert.Equal(t, float64(1), values["transaction_amount_minor_units"])
	assert.Equal(t, float64(1), values["transaction_create_duration_milliseconds"])
	assert.Equal(t, float64(1), values["category_report_duration_seconds"])
}
