package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options параметры создания логгера
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console или json
}

// Logger представляет систему логирования компонента поверх zap
type Logger struct {
	component string
	base      *zap.Logger
	sugar     *zap.SugaredLogger
	level     zap.AtomicLevel
}

// Глобальный экземпляр логгера; до InitDefaultLogger ничего не пишет
var defaultLogger = NewFromZap("", zap.NewNop())

// ParseLevel разбирает уровень логирования.
// trace пишется как debug, пустая строка означает info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "":
		return zapcore.InfoLevel, nil
	case "trace":
		return zapcore.DebugLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return l, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// NewLogger создаёт логгер компонента.
// json — продакшн-энкодер, console — цветной вывод для разработки.
func NewLogger(component string, opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if opts.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	base, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания логгера %s: %w", component, err)
	}
	if component != "" {
		base = base.Named(component)
	}

	return &Logger{
		component: component,
		base:      base,
		sugar:     base.Sugar(),
		level:     zapCfg.Level,
	}, nil
}

// NewFromZap оборачивает готовый zap.Logger (используется в тестах с zaptest/observer)
func NewFromZap(component string, base *zap.Logger) *Logger {
	if component != "" {
		base = base.Named(component)
	}
	return &Logger{
		component: component,
		base:      base,
		sugar:     base.Sugar(),
		level:     zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

// Named возвращает дочерний логгер компонента с общим выводом и уровнем
func (l *Logger) Named(component string) *Logger {
	base := l.base.Named(component)
	return &Logger{
		component: component,
		base:      base,
		sugar:     base.Sugar(),
		level:     l.level,
	}
}

// Zap возвращает исходный zap.Logger для структурированных полей
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// SetLevel меняет минимальный уровень на лету
func (l *Logger) SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.level.SetLevel(parsed)
	return nil
}

// Trace логирует сообщение уровня TRACE (пишется как DEBUG)
func (l *Logger) Trace(format string, args ...interface{}) {
	l.sugar.Debugf("[TRACE] "+format, args...)
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Close сбрасывает буферы.
// Ошибку Sync для stdout/stderr игнорируем: на терминалах она возникает всегда.
func (l *Logger) Close() error {
	_ = l.base.Sync()
	return nil
}

// InitDefaultLogger инициализирует глобальный логгер
func InitDefaultLogger(component string, opts Options) error {
	logger, err := NewLogger(component, opts)
	if err != nil {
		return err
	}
	SetDefault(logger)
	return nil
}

// SetDefault подменяет глобальный логгер и сбрасывает кеш компонентов
func SetDefault(l *Logger) {
	defaultLogger = l
	GetLoggerManager().reset()
}

// Default возвращает глобальный логгер
func Default() *Logger {
	return defaultLogger
}

// CloseDefaultLogger закрывает систему логирования
func CloseDefaultLogger() {
	_ = GetLoggerManager().CloseAll()
	_ = defaultLogger.Close()
}

// Trace логирует через глобальный логгер
func Trace(format string, args ...interface{}) { defaultLogger.Trace(format, args...) }

// Debug логирует через глобальный логгер
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }

// Info логирует через глобальный логгер
func Info(format string, args ...interface{}) { defaultLogger.Info(format, args...) }

// Warn логирует через глобальный логгер
func Warn(format string, args ...interface{}) { defaultLogger.Warn(format, args...) }

// Error логирует через глобальный логгер
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
