package metrics

import (
	"strconv"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "currency_service"

// PrometheusMetrics records domain, HTTP and database pool metrics
type PrometheusMetrics struct {
	mutationsTotal    *prometheus.CounterVec
	mutationDuration  *prometheus.HistogramVec
	ledgersCreated    prometheus.Counter
	queueWorkers      prometheus.Gauge
	eventsPublished   *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	rateLimitedTotal  *prometheus.CounterVec
	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge
	suspensionsLifted prometheus.Counter
}

var _ core.MetricsRecorder = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers every collector with reg
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		mutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Balance mutations by transaction type and outcome",
		}, []string{"type", "outcome"}),
		mutationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mutation_duration_seconds",
			Help:      "Time spent applying a balance mutation inside its unit of work",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		ledgersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledgers_created_total",
			Help:      "Ledgers created at registration or on first access",
		}),
		queueWorkers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mutation_queue_workers",
			Help:      "Live per-user mutation queue workers",
		}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Domain events handed to the broker by outcome",
		}, []string{"event", "outcome"}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimitedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"route"}),
		dbOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Open database connections",
		}),
		dbInUse: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Database connections currently in use",
		}),
		dbIdle: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_idle_connections",
			Help:      "Idle database connections",
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),
		suspensionsLifted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suspensions_lifted_total",
			Help:      "Expired suspensions lifted by the sweeper",
		}),
	}
}

// RecordMutation counts one mutation and observes its duration
func (m *PrometheusMetrics) RecordMutation(txType string, outcome string, duration time.Duration) {
	m.mutationsTotal.WithLabelValues(txType, outcome).Inc()
	if duration > 0 {
		m.mutationDuration.WithLabelValues(txType).Observe(duration.Seconds())
	}
}

// RecordLedgerCreated counts a new ledger
func (m *PrometheusMetrics) RecordLedgerCreated() {
	m.ledgersCreated.Inc()
}

// SetQueueWorkers reports live queue workers
func (m *PrometheusMetrics) SetQueueWorkers(n int) {
	m.queueWorkers.Set(float64(n))
}

// RecordEventPublished counts a publish attempt
func (m *PrometheusMetrics) RecordEventPublished(event string, outcome string) {
	m.eventsPublished.WithLabelValues(event, outcome).Inc()
}

// RecordHTTPRequest counts a served request
func (m *PrometheusMetrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateLimited counts a rejected request
func (m *PrometheusMetrics) RecordRateLimited(route string) {
	m.rateLimitedTotal.WithLabelValues(route).Inc()
}

// RecordPoolStats reports database pool gauges
func (m *PrometheusMetrics) RecordPoolStats(open, inUse, idle int, waitCount int64) {
	m.dbOpenConnections.Set(float64(open))
	m.dbInUse.Set(float64(inUse))
	m.dbIdle.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

// RecordSuspensionsLifted adds to the lifted suspension counter
func (m *PrometheusMetrics) RecordSuspensionsLifted(n int) {
	m.suspensionsLifted.Add(float64(n))
}
