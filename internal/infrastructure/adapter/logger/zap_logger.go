package logger

import (
	"io"
	"os"
	"strings"

	"github.com/auctionhub/currency-service/internal/domain/port/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls encoding, level and destination of log output
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console; empty picks json in production
	Output string // stdout, file or both

	// File rotation, used when Output is file or both
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// ZapLogger implements the Logger interface using Zap
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger creates a new zap-based logger instance
func NewZapLogger(isProduction bool, cfg Config) core.Logger {
	var encoderCfg zapcore.EncoderConfig
	if isProduction {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	}
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "console"
		if isProduction {
			format = "json"
		}
	}

	var encoder zapcore.Encoder
	if format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		if cfg.Output != "file" {
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	level, err := core.ParseLogLevel(cfg.Level)
	if err != nil {
		level = core.LogLevelInfo
	}
	atomicLevel := zap.NewAtomicLevelAt(toZapLevel(level))

	zapCore := zapcore.NewCore(encoder, zapcore.AddSync(outputWriter(cfg)), atomicLevel)

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zap.ErrorLevel)}
	if !isProduction {
		opts = append(opts, zap.Development())
	}

	return &ZapLogger{
		logger: zap.New(zapCore, opts...),
		level:  atomicLevel,
	}
}

// NewDefaultLogger creates a standard logger for the application
func NewDefaultLogger() core.Logger {
	return NewZapLogger(false, Config{Level: "info", Output: "stdout"})
}

func outputWriter(cfg Config) io.Writer {
	if cfg.Filename == "" {
		return os.Stdout
	}

	switch cfg.Output {
	case "file":
		return rotatingFile(cfg)
	case "both":
		return io.MultiWriter(os.Stdout, rotatingFile(cfg))
	default:
		return os.Stdout
	}
}

func rotatingFile(cfg Config) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

func toZapLevel(level core.LogLevel) zapcore.Level {
	switch level {
	case core.LogLevelDebug:
		return zap.DebugLevel
	case core.LogLevelWarn:
		return zap.WarnLevel
	case core.LogLevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// SetLevel sets the minimum log level
func (l *ZapLogger) SetLevel(level core.LogLevel) {
	l.level.SetLevel(toZapLevel(level))
}

// GetLevel gets the current log level
func (l *ZapLogger) GetLevel() core.LogLevel {
	switch l.level.Level() {
	case zap.DebugLevel:
		return core.LogLevelDebug
	case zap.WarnLevel:
		return core.LogLevelWarn
	case zap.ErrorLevel, zap.DPanicLevel, zap.PanicLevel, zap.FatalLevel:
		return core.LogLevelError
	default:
		return core.LogLevelInfo
	}
}

// Named returns a child logger that shares the level
func (l *ZapLogger) Named(name string) core.Logger {
	return &ZapLogger{logger: l.logger.Named(name), level: l.level}
}

// mapToZapFields converts a map of fields to zap fields
func mapToZapFields(fields map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

// Debug logs debug messages
func (l *ZapLogger) Debug(message string, fields map[string]any) {
	l.logger.Debug(message, mapToZapFields(fields)...)
}

// Info logs informational messages
func (l *ZapLogger) Info(message string, fields map[string]any) {
	l.logger.Info(message, mapToZapFields(fields)...)
}

// Warn logs warning messages
func (l *ZapLogger) Warn(message string, fields map[string]any) {
	l.logger.Warn(message, mapToZapFields(fields)...)
}

// Error logs error messages
func (l *ZapLogger) Error(message string, fields map[string]any) {
	l.logger.Error(message, mapToZapFields(fields)...)
}

// Flush ensures all buffered logs are written
func (l *ZapLogger) Flush() error {
	return l.logger.Sync()
}
