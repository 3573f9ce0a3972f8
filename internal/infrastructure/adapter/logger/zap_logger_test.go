package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_Levels(t *testing.T) {
	log := NewZapLogger(true, Config{Level: "warn", Output: "stdout"})
	assert.Equal(t, core.LogLevelWarn, log.GetLevel())

	log.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, log.GetLevel())

	child := log.Named("ledger")
	assert.Equal(t, core.LogLevelDebug, child.GetLevel())
	log.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, child.GetLevel())
}

func TestZapLogger_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	log := NewZapLogger(true, Config{Level: "info", Output: "file", Filename: path, MaxSizeMB: 1})

	log.Info("charge applied", map[string]any{"user_id": 7, "amount": "10.00"})
	log.Debug("suppressed", nil)
	_ = log.Flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"charge applied"`)
	assert.Contains(t, string(data), `"user_id":7`)
	assert.NotContains(t, string(data), "suppressed")
}

func TestNoopLogger(t *testing.T) {
	log := NewNoopLogger()
	log.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, log.GetLevel())
	assert.Same(t, log, log.Named("x"))
	assert.NoError(t, log.Flush())
}
