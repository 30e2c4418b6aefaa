package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger routes gorm's logging through zap. Record-not-found
// errors are dropped because repositories translate them to nil results.
type GormLogger struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold overrides the slow query threshold
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(gl *GormLogger) {
		gl.slowThreshold = d
	}
}

// NewGormLogger adapts a zap logger to gorm's logger interface
func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		log:           log.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (gl *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *gl
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface
func (gl *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if gl.level >= gormlogger.Info {
		gl.log.Sugar().Infof(msg, args...)
	}
}

// Warn implements gormlogger.Interface
func (gl *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if gl.level >= gormlogger.Warn {
		gl.log.Sugar().Warnf(msg, args...)
	}
}

// Error implements gormlogger.Interface
func (gl *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if gl.level >= gormlogger.Error {
		gl.log.Sugar().Errorf(msg, args...)
	}
}

// Trace implements gormlogger.Interface, logging each executed statement
func (gl *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if gl.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}

	switch {
	case err != nil && gl.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		gl.log.Error("sql failed", append(fields, zap.Error(err))...)
	case gl.slowThreshold > 0 && elapsed >= gl.slowThreshold && gl.level >= gormlogger.Warn:
		gl.log.Warn("slow sql", append(fields, zap.Duration("threshold", gl.slowThreshold))...)
	case gl.level >= gormlogger.Info:
		gl.log.Debug("sql", fields...)
	}
}

// MapGormLogLevel translates the application log level into gorm's
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
