package main

import (
	"fmt"
	"strings"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/usecase/currency"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/database"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/logger"
	"github.com/auctionhub/currency-service/internal/infrastructure/config"
)

func databaseConfig(cfg *config.Config) *database.Config {
	return &database.Config{
		Driver:             cfg.Database.Driver,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Database,
		SSLMode:            cfg.Database.SSLMode,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		QueryTimeout:       cfg.Database.QueryTimeout,
		LogLevel:           cfg.Database.LogLevel,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		IsolationLevel:     cfg.Database.IsolationLevel,
		RetryAttempts:      cfg.Database.RetryAttempts,
		RetryDelay:         cfg.Database.RetryDelay,
		AutoMigrate:        cfg.Database.AutoMigrate,
	}
}

func loggerConfig(cfg *config.Config) logger.Config {
	return logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		Filename:   cfg.Logger.Filename,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
		Compress:   cfg.Logger.Compress,
	}
}

// currencyConfig assumes validateConfig already accepted the minimum charge
func currencyConfig(cfg *config.Config) currency.Config {
	ledger := currency.DefaultConfig()
	ledger.QueueSize = cfg.Ledger.QueueSize
	ledger.MaxPageSize = cfg.Ledger.MaxPageSize
	ledger.PublishTimeout = cfg.Ledger.PublishTimeout
	ledger.WorkerIdleTimeout = cfg.Ledger.WorkerIdleTimeout
	if minCharge, err := entity.ParseAmount(cfg.Ledger.MinChargeAmount); err == nil {
		ledger.MinChargeAmount = minCharge
	}
	return ledger
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}
	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or CL_AUTH_JWT_SECRET environment variable)")
	}
	if cfg.Admin.Username != "" && cfg.Admin.Password == "" {
		missingConfigs = append(missingConfigs, "admin.password (or CL_ADMIN_PASSWORD environment variable)")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingConfigs, ", "))
	}

	if err := databaseConfig(cfg).Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	minCharge, err := entity.ParseAmount(cfg.Ledger.MinChargeAmount)
	if err != nil || !minCharge.IsPositive() {
		return fmt.Errorf("ledger.minChargeAmount must be a positive amount, got %q", cfg.Ledger.MinChargeAmount)
	}
	if cfg.Ledger.QueueSize <= 0 {
		return fmt.Errorf("ledger.queueSize must be positive, got %d", cfg.Ledger.QueueSize)
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("rateLimit requires positive requests and window")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcryptCost must be between 4 and 31, got %d", cfg.Auth.BcryptCost)
	}

	return nil
}
