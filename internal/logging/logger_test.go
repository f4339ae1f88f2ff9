package logging

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WhenDevelopmentEnvironment_ThenReturnsLogger(t *testing.T) {
	// Act
	logger, err := New(Options{Environment: "development", Level: "debug"})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Zap().Core().Enabled(zapcore.DebugLevel))
	_ = logger.Sync()
}

func TestNew_WhenProductionEnvironment_ThenDebugIsDisabled(t *testing.T) {
	// Act
	logger, err := New(Options{Environment: "production", Level: "info"})

	// Assert
	require.NoError(t, err)
	assert.False(t, logger.Zap().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
	_ = logger.Sync()
}

func TestNew_WhenInvalidLogLevel_ThenDefaultsToInfo(t *testing.T) {
	// Act
	logger, err := New(Options{Environment: "production", Level: "invalid-level"})

	// Assert
	require.NoError(t, err)
	assert.False(t, logger.Zap().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
}

func TestNew_WhenConsoleEncodingInProduction_ThenBuilds(t *testing.T) {
	// Act
	logger, err := New(Options{Environment: "production", Level: "warn", Encoding: "console"})

	// Assert
	require.NoError(t, err)
	assert.False(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
}

func TestNewFromEnv_WhenNoEnvironmentVariables_ThenUsesDefaults(t *testing.T) {
	// Arrange
	originalEnvironment := os.Getenv("ENVIRONMENT")
	originalLogLevel := os.Getenv("LOG_LEVEL")
	defer func() {
		os.Setenv("ENVIRONMENT", originalEnvironment)
		os.Setenv("LOG_LEVEL", originalLogLevel)
	}()
	os.Unsetenv("ENVIRONMENT")
	os.Unsetenv("LOG_LEVEL")

	// Act
	logger, err := NewFromEnv()

	// Assert
	require.NoError(t, err)
	assert.True(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Zap().Core().Enabled(zapcore.DebugLevel))
}

func TestNewFromZap_WhenWrappingObserver_ThenEntriesCarryWithFields(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewFromZap(zap.New(core))

	// Act
	logger.With(zap.String("component", "test")).Warn("careful", zap.Int("n", 2))

	// Assert
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "careful", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "test", ctx["component"])
	assert.EqualValues(t, 2, ctx["n"])
}

func TestNoOpLogger_AllMethods_WhenCalled_ThenDoNothing(t *testing.T) {
	// Arrange
	logger := NewNoOpLogger()

	// Act & Assert
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	assert.Same(t, logger, logger.With(zap.String("key", "value")))
	assert.NotNil(t, logger.Zap())
	assert.NoError(t, logger.Sync())
}
