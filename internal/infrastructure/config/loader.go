package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. CL_SERVER_PORT
const EnvPrefix = "CL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

var errNoDotEnv = errors.New("no .env file found in search paths")

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigPaths...)
}

// LoadConfigFrom loads <env>.yaml from the first of paths that has it, then applies
// .env values and CL_ environment overrides
func LoadConfigFrom(paths ...string) (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil && !errors.Is(err, errNoDotEnv) {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Set environment variables to override config
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first readable .env file; existing variables win
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errNoDotEnv
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 5) // minutes
	v.SetDefault("database.connMaxIdleTime", 5) // minutes
	v.SetDefault("database.queryTimeout", 10)   // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 5)           // seconds
	v.SetDefault("database.slowQueryThreshold", 200) // milliseconds
	v.SetDefault("database.isolationLevel", "read committed")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.autoMigrate", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.maxSizeMB", 100)
	v.SetDefault("logger.maxBackups", 5)
	v.SetDefault("logger.maxAgeDays", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("ledger.queueSize", 100)
	v.SetDefault("ledger.maxPageSize", 100)
	v.SetDefault("ledger.minChargeAmount", "0.01")
	v.SetDefault("ledger.publishTimeout", 2000)   // milliseconds
	v.SetDefault("ledger.workerIdleTimeout", 300) // seconds

	v.SetDefault("auth.tokenTTL", 60) // minutes
	v.SetDefault("auth.bcryptCost", 12)

	v.SetDefault("amqp.exchange", "currency.events")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requests", 60)
	v.SetDefault("rateLimit.window", 60) // seconds

	v.SetDefault("scheduler.suspensionSweep", "@every 1m")
}

// getEnvironment determines the environment to use based on CL_ENV environment variable
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides maps the flat variable names used in deployments onto config keys.
// AutomaticEnv only covers keys whose path matches the variable name.
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"CL_DB_HOST":         "database.host",
		"CL_DB_USERNAME":     "database.username",
		"CL_DB_PASSWORD":     "database.password",
		"CL_DB_NAME":         "database.database",
		"CL_DB_SSL_MODE":     "database.sslMode",
		"CL_DB_DRIVER":       "database.driver",
		"CL_AUTH_JWT_SECRET": "auth.jwtSecret",
		"CL_REDIS_ADDR":      "redis.addr",
		"CL_REDIS_PASSWORD":  "redis.password",
		"CL_AMQP_URL":        "amqp.url",
		"CL_ADMIN_USERNAME":  "admin.username",
		"CL_ADMIN_EMAIL":     "admin.email",
		"CL_ADMIN_PASSWORD":  "admin.password",
		"CL_LOGGER_LEVEL":    "logger.level",
	}
	for name, key := range stringOverrides {
		if value := os.Getenv(name); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"CL_DB_PORT":           "database.port",
		"CL_DB_MAX_OPEN_CONNS": "database.maxOpenConns",
		"CL_DB_MAX_IDLE_CONNS": "database.maxIdleConns",
		"CL_SERVER_PORT":       "server.port",
		"CL_LEDGER_QUEUE_SIZE": "ledger.queueSize",
	}
	for name, key := range intOverrides {
		if value := getEnvInt(name, 0); value > 0 {
			v.Set(key, value)
		}
	}

	if origins := os.Getenv("CL_SERVER_ALLOWED_ORIGINS"); origins != "" {
		v.Set("server.allowedOrigins", strings.Split(origins, ","))
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = config.Server.ReadTimeout * time.Second
	config.Server.WriteTimeout = config.Server.WriteTimeout * time.Second
	config.Server.IdleTimeout = config.Server.IdleTimeout * time.Second
	config.Server.ReadHeaderTimeout = config.Server.ReadHeaderTimeout * time.Second
	config.Server.ShutdownTimeout = config.Server.ShutdownTimeout * time.Second

	config.Database.ConnMaxLifetime = config.Database.ConnMaxLifetime * time.Minute
	config.Database.ConnMaxIdleTime = config.Database.ConnMaxIdleTime * time.Minute
	config.Database.QueryTimeout = config.Database.QueryTimeout * time.Second
	config.Database.RetryDelay = config.Database.RetryDelay * time.Second
	config.Database.SlowQueryThreshold = config.Database.SlowQueryThreshold * time.Millisecond

	config.Ledger.PublishTimeout = config.Ledger.PublishTimeout * time.Millisecond
	config.Ledger.WorkerIdleTimeout = config.Ledger.WorkerIdleTimeout * time.Second
	config.Auth.TokenTTL = config.Auth.TokenTTL * time.Minute
	config.RateLimit.Window = config.RateLimit.Window * time.Second
}
