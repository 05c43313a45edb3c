package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestNewDBTracingPlugin_DefaultsThreshold(t *testing.T) {
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, plugin.config.SlowQueryThresh)
}

func TestDBTracingPlugin_Register_Disabled(t *testing.T) {
	db := setupTestDB(t)
	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zaptest.NewLogger(t))

	assert.NoError(t, plugin.Register(db))
}

func TestDBTracingPlugin_Register_Enabled(t *testing.T) {
	db := setupTestDB(t)
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"

	require.NoError(t, NewDBTracingPlugin(cfg, zaptest.NewLogger(t)).Register(db))
	assert.NoError(t, db.Create(&tracedRow{Name: "widget"}).Error)
}

func TestDBTracingPlugin_MarksSlowQueries(t *testing.T) {
	db := setupTestDB(t)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Nanosecond}, zap.NewNop())
	require.NoError(t, plugin.RegisterCallbacks(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "query")
	require.NoError(t, db.WithContext(ctx).Create(&tracedRow{Name: "widget"}).Error)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.True(t, attrs["db.slow_query"].AsBool())
	assert.Equal(t, int64(1), attrs["db.rows_affected"].AsInt64())
	assert.Equal(t, "traced_rows", attrs["db.sql.table"].AsString())
	assert.NotEmpty(t, spans[0].Events())
}

func TestDBTracingPlugin_MarksErrors(t *testing.T) {
	db := setupTestDB(t)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	require.NoError(t, NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop()).RegisterCallbacks(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "bad-query")
	err := db.WithContext(ctx).Exec("SELECT * FROM missing_table").Error
	span.End()

	require.Error(t, err)
	assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
}

func TestDBTracingPlugin_IgnoresRecordNotFound(t *testing.T) {
	db := setupTestDB(t)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	require.NoError(t, NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop()).RegisterCallbacks(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "lookup")
	var row tracedRow
	err := db.WithContext(ctx).First(&row, 999).Error
	span.End()

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, codes.Unset, sr.Ended()[0].Status().Code)
}
