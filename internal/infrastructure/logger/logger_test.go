package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates json logger", func(t *testing.T) {
		logger, err := New(ProductionConfig())
		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestNewForEnvironment(t *testing.T) {
	logger, err := NewForEnvironment("production")
	assert.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewForEnvironment("development")
	assert.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}

func TestContext(t *testing.T) {
	t.Run("round-trips logger through context", func(t *testing.T) {
		logger := zap.NewNop()
		ctx := WithContext(context.Background(), logger)
		assert.Equal(t, logger, FromContext(ctx))
	})

	t.Run("returns no-op logger when context is empty", func(t *testing.T) {
		logger := FromContext(context.Background())
		assert.NotNil(t, logger)
	})

	t.Run("carries request ID", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("carries user ID", func(t *testing.T) {
		ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-456")
		assert.Equal(t, "user-456", GetUserID(ctx))
	})

	t.Run("empty context has no IDs", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
		assert.Empty(t, GetUserID(context.Background()))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("whatever"))
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn)
	changed := gl.LogMode(gormlogger.Silent)
	assert.NotSame(t, gl, changed)
}
