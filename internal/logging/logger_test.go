package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Default()
	SetDefault(NewFromZap("", zap.New(core)))
	t.Cleanup(func() { SetDefault(prev) })
	return logs
}

func TestGlobalFunctions(t *testing.T) {
	logs := observed(t)

	Info("старт %d", 1)
	Warn("предупреждение")
	Trace("шаг %s", "x")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "старт 1", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "[TRACE] шаг x", entries[2].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
}

func TestComponentLoggers(t *testing.T) {
	logs := observed(t)

	sim := GetSimLogger()
	assert.Same(t, sim, GetComponentLogger("sim"), "Логгер компонента кешируется")

	sim.Error("сбой %v", "x")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sim", entries[0].LoggerName)
	assert.Contains(t, GetLoggerManager().ListComponents(), "sim")

	assert.Error(t, GetLoggerManager().SetLogLevel("missing", "debug"))
	assert.NoError(t, GetLoggerManager().SetLogLevel("sim", "warn"))
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		l, err := NewLogger("test", Options{Level: "", Format: format})
		require.NoError(t, err)
		// Пустой уровень означает info
		assert.False(t, l.Zap().Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Zap().Core().Enabled(zapcore.InfoLevel))

		require.NoError(t, l.SetLevel("trace"))
		assert.True(t, l.Zap().Core().Enabled(zapcore.DebugLevel))
		assert.Error(t, l.SetLevel("verbose"))
		assert.True(t, l.Zap().Core().Enabled(zapcore.DebugLevel), "Ошибочный уровень не меняет текущий")
		assert.NoError(t, l.Close())
	}
}

func TestDefaultIsSilentBeforeInit(t *testing.T) {
	// Глобальные функции не паникуют без инициализации
	assert.NotPanics(t, func() {
		NewFromZap("", zap.NewNop()).Info("ничего")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"trace", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("bogus")
	assert.Error(t, err)
	_, err = NewLogger("test", Options{Level: "bogus", Format: "console"})
	assert.Error(t, err)
}
