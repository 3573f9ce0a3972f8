package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Ledger      LedgerConfig    `mapstructure:"ledger"`
	Auth        AuthConfig      `mapstructure:"auth"`
	Redis       RedisConfig     `mapstructure:"redis"`
	AMQP        AMQPConfig      `mapstructure:"amqp"`
	RateLimit   RateLimitConfig `mapstructure:"rateLimit"`
	Scheduler   SchedulerConfig `mapstructure:"scheduler"`
	Admin       AdminConfig     `mapstructure:"admin"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database"`
	SSLMode            string        `mapstructure:"sslMode"`
	MaxOpenConns       int           `mapstructure:"maxOpenConns"`
	MaxIdleConns       int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime    time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout       time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts      int           `mapstructure:"retryAttempts"`
	RetryDelay         time.Duration `mapstructure:"retryDelay"`         // seconds
	SlowQueryThreshold time.Duration `mapstructure:"slowQueryThreshold"` // milliseconds
	IsolationLevel     string        `mapstructure:"isolationLevel"`
	LogLevel           string        `mapstructure:"logLevel"`
	AutoMigrate        bool          `mapstructure:"autoMigrate"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	Compress   bool   `mapstructure:"compress"`
}

// LedgerConfig contains balance mutation settings
type LedgerConfig struct {
	QueueSize       int           `mapstructure:"queueSize"`
	MaxPageSize     int           `mapstructure:"maxPageSize"`
	MinChargeAmount string        `mapstructure:"minChargeAmount"`
	PublishTimeout  time.Duration `mapstructure:"publishTimeout"` // milliseconds
	// WorkerIdleTimeout retires a per-user mutation worker after this long without work
	WorkerIdleTimeout time.Duration `mapstructure:"workerIdleTimeout"` // seconds
}

// AuthConfig contains bearer token settings
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwtSecret"`
	Issuer     string        `mapstructure:"issuer"`
	TokenTTL   time.Duration `mapstructure:"tokenTTL"` // minutes
	BcryptCost int           `mapstructure:"bcryptCost"`
}

// RedisConfig points at the shared rate limit store; an empty address keeps limits in memory
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AMQPConfig points at the event broker; an empty URL disables publishing
type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// RateLimitConfig throttles the charge and registration endpoints
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"` // seconds
}

// SchedulerConfig contains background job schedules in cron syntax
type SchedulerConfig struct {
	SuspensionSweep string `mapstructure:"suspensionSweep"`
}

// AdminConfig seeds the bootstrap staff account; an empty username disables seeding
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// IsProduction reports whether the production profile is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
