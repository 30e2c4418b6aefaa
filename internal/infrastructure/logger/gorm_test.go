package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func traceStatement(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_TraceLogsQueryAtDebug(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	gl.Trace(context.Background(), time.Now(), traceStatement("SELECT * FROM invoices", 3), nil)

	entries := recorded.FilterMessage("sql").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "SELECT * FROM invoices", fields["sql"])
	assert.EqualValues(t, 3, fields["rows"])
}

func TestGormLogger_TraceLogsError(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), traceStatement("INSERT INTO invoices", 0), errors.New("duplicate key"))

	entries := recorded.FilterMessage("sql failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestGormLogger_RecordNotFoundIsDropped(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), traceStatement("SELECT 1", 0), gormlogger.ErrRecordNotFound)

	assert.Zero(t, recorded.Len())
}

func TestGormLogger_SlowQueryWarns(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

	begin := time.Now().Add(-time.Millisecond)
	gl.Trace(context.Background(), begin, traceStatement("SELECT pg_sleep(1)", 0), nil)

	entries := recorded.FilterMessage("slow sql").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestGormLogger_SilentSuppressesEverything(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), traceStatement("SELECT 1", 1), errors.New("boom"))
	gl.Info(context.Background(), "info %s", "msg")
	gl.Warn(context.Background(), "warn %s", "msg")
	gl.Error(context.Background(), "error %s", "msg")

	assert.Zero(t, recorded.Len())
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-7")
	gl.Trace(ctx, time.Now(), traceStatement("SELECT 1", 1), nil)

	entries := recorded.FilterMessage("sql").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Warn)

	quieter := gl.LogMode(gormlogger.Silent)
	assert.NotSame(t, gl, quieter)
	// the original keeps its level
	assert.Equal(t, gormlogger.Warn, gl.level)
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"other", gormlogger.Warn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapGormLogLevel(tt.input), tt.input)
	}
}
