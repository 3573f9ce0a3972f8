package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.RecordMutation("CHARGE", "success", 5*time.Millisecond)
	m.RecordMutation("CHARGE", "success", 3*time.Millisecond)
	m.RecordMutation("FEE", "rejected", 0)
	m.RecordLedgerCreated()
	m.SetQueueWorkers(4)
	m.RecordEventPublished("currency.transaction.created", "failed")
	m.RecordHTTPRequest("POST", "/api/currency/charge", 200, time.Millisecond)
	m.RecordRateLimited("/api/currency/charge")
	m.RecordPoolStats(10, 3, 7, 2)
	m.RecordSuspensionsLifted(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutationsTotal.WithLabelValues("CHARGE", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutationsTotal.WithLabelValues("FEE", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgersCreated))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.queueWorkers))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/currency/charge", "200")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbInUse))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.suspensionsLifted))

	// a second registry accepts a second instance
	assert.NotPanics(t, func() { NewPrometheusMetrics(prometheus.NewRegistry()) })
}
