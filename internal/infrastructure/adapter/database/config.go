package database

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported isolation levels for ledger transactions
const (
	IsolationReadCommitted  = "read committed"
	IsolationRepeatableRead = "repeatable read"
	IsolationSerializable   = "serializable"
)

// Config represents database configuration
type Config struct {
	Driver             string        `mapstructure:"driver"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database"`
	SSLMode            string        `mapstructure:"sslMode"`
	MaxOpenConns       int           `mapstructure:"maxOpenConns"`
	MaxIdleConns       int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout       time.Duration `mapstructure:"queryTimeout"`
	LogLevel           string        `mapstructure:"logLevel"`
	SlowQueryThreshold time.Duration `mapstructure:"slowQueryThreshold"`
	IsolationLevel     string        `mapstructure:"isolationLevel"`
	RetryAttempts      int           `mapstructure:"retryAttempts"`
	RetryDelay         time.Duration `mapstructure:"retryDelay"`
	AutoMigrate        bool          `mapstructure:"autoMigrate"`
}

// DefaultConfig returns a Config with default values.
// Credentials are left empty and must come from the loaded configuration.
func DefaultConfig() *Config {
	return &Config{
		Driver:             DriverPostgres,
		Port:               5432,
		SSLMode:            "disable",
		MaxOpenConns:       25,
		MaxIdleConns:       25,
		ConnMaxLifetime:    5 * time.Minute,
		ConnMaxIdleTime:    5 * time.Minute,
		QueryTimeout:       10 * time.Second,
		LogLevel:           "warn",
		SlowQueryThreshold: 200 * time.Millisecond,
		IsolationLevel:     IsolationReadCommitted,
		RetryAttempts:      3,
		RetryDelay:         5 * time.Second,
		AutoMigrate:        true,
	}
}

// SQLiteMemoryConfig returns a single-connection in-memory sqlite configuration.
// Every connection to ":memory:" opens a fresh database, so the pool is pinned to one.
func SQLiteMemoryConfig() *Config {
	cfg := DefaultConfig()
	cfg.Driver = DriverSQLite
	cfg.Database = ":memory:"
	cfg.MaxOpenConns = 1
	cfg.MaxIdleConns = 1
	cfg.ConnMaxLifetime = 0
	cfg.ConnMaxIdleTime = 0
	cfg.LogLevel = "silent"
	cfg.RetryAttempts = 1
	cfg.RetryDelay = 0
	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" {
			return errors.New("database host is required")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("invalid port number: %d", c.Port)
		}
		if c.Username == "" {
			return errors.New("database username is required")
		}
		if c.Password == "" {
			return errors.New("database password is required")
		}
		if c.Database == "" {
			return errors.New("database name is required")
		}

		validSSLModes := map[string]bool{
			"disable":     true,
			"require":     true,
			"verify-ca":   true,
			"verify-full": true,
			"prefer":      true,
		}
		if !validSSLModes[c.SSLMode] {
			return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
		}
	case DriverSQLite:
		if c.Database == "" {
			return errors.New("sqlite database path is required")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be non-negative, got: %s", c.RetryDelay)
	}

	validLogLevels := map[string]bool{
		"silent": true,
		"error":  true,
		"warn":   true,
		"info":   true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	switch strings.ToLower(c.IsolationLevel) {
	case "", IsolationReadCommitted, IsolationRepeatableRead:
	case IsolationSerializable:
		if c.Driver != DriverPostgres {
			return fmt.Errorf("isolation level %q requires postgres", c.IsolationLevel)
		}
	default:
		return fmt.Errorf("invalid isolation level: %s", c.IsolationLevel)
	}

	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Database
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// RedactedDSN returns the connection string with the password masked for logging
func (c *Config) RedactedDSN() string {
	if c.Driver == DriverSQLite {
		return c.Database
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=*** dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Database, c.SSLMode,
	)
}
