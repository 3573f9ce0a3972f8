package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
)

// PoolStatsRecorder receives connection pool gauges
type PoolStatsRecorder interface {
	RecordPoolStats(open, inUse, idle int, waitCount int64)
}

// ConnectionPoolMetrics tracks database connection pool metrics
type ConnectionPoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxLifetimeClosed  int64
}

// ConnectionPoolMonitor samples sql.DB statistics on a ticker
type ConnectionPoolMonitor struct {
	stats        func() (sql.DBStats, error)
	logger       coreport.Logger
	recorder     PoolStatsRecorder
	metricsCache *ConnectionPoolMetrics
	mutex        sync.RWMutex
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewConnectionPoolMonitor creates a new connection pool monitor. recorder may be nil.
func NewConnectionPoolMonitor(stats func() (sql.DBStats, error), logger coreport.Logger, recorder PoolStatsRecorder) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		stats:    stats,
		logger:   logger,
		recorder: recorder,
		stopChan: make(chan struct{}),
	}
}

// Start begins monitoring the connection pool
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if err := m.collectMetrics(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.collectMetrics(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitoring; safe to call more than once
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
	m.wg.Wait()
}

// GetMetrics returns the last sampled connection pool metrics
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.metricsCache == nil {
		return ConnectionPoolMetrics{}
	}

	return *m.metricsCache
}

func (m *ConnectionPoolMonitor) collectMetrics() error {
	stats, err := m.stats()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	m.mutex.Lock()
	m.metricsCache = &ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
	m.mutex.Unlock()

	if m.recorder != nil {
		m.recorder.RecordPoolStats(stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount)
	}

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}

// HealthChecker pings the database for readiness probes
type HealthChecker struct {
	db      func() (*sql.DB, error)
	timeout time.Duration
}

// NewHealthChecker creates a health checker with the given ping timeout
func NewHealthChecker(db func() (*sql.DB, error), timeout time.Duration) *HealthChecker {
	return &HealthChecker{db: db, timeout: timeout}
}

// Check pings the database
func (h *HealthChecker) Check(ctx context.Context) error {
	sqlDB, err := h.db()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
