package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Host = "localhost"
		cfg.Username = "ledger"
		cfg.Password = "secret"
		cfg.Database = "currency"
		return cfg
	}

	assert.NoError(t, valid().Validate())
	assert.NoError(t, SQLiteMemoryConfig().Validate())

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host", func(c *Config) { c.Host = "" }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"missing password", func(c *Config) { c.Password = "" }},
		{"bad ssl mode", func(c *Config) { c.SSLMode = "sometimes" }},
		{"unknown driver", func(c *Config) { c.Driver = "mysql" }},
		{"no connections", func(c *Config) { c.MaxOpenConns = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"bad isolation", func(c *Config) { c.IsolationLevel = "chaos" }},
		{"serializable sqlite", func(c *Config) {
			c.Driver = DriverSQLite
			c.IsolationLevel = IsolationSerializable
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db"
	cfg.Username = "ledger"
	cfg.Password = "secret"
	cfg.Database = "currency"

	assert.Equal(t, "host=db port=5432 user=ledger password=secret dbname=currency sslmode=disable", cfg.DSN())
	assert.NotContains(t, cfg.RedactedDSN(), "secret")
	assert.Equal(t, ":memory:", SQLiteMemoryConfig().DSN())
}
