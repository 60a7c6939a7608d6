package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements the Logger interface on top of a sugared zap logger
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a zap-backed logger. JSON encoding is used in production or when
// format is "json"; console encoding otherwise.
func NewZapLogger(level, format string) Logger {
	var cfg zap.Config
	if useJSON(format) {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if parsed, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}

	return &ZapLogger{sugar: base.Sugar()}
}

// NewZapLoggerFrom wraps an existing zap logger
func NewZapLoggerFrom(base *zap.Logger) Logger {
	return &ZapLogger{sugar: base.Sugar()}
}

func (l *ZapLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *ZapLogger) Info(args ...interface{})  { l.sugar.Info(args...) }
func (l *ZapLogger) Warn(args ...interface{})  { l.sugar.Warn(args...) }
func (l *ZapLogger) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *ZapLogger) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }

func (l *ZapLogger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }
func (l *ZapLogger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// WithFields adds structured fields to the logger
func (l *ZapLogger) WithFields(fields map[string]interface{}) Logger {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &ZapLogger{sugar: l.sugar.With(kv...)}
}

// WithContext adds request-scoped context values to the logger
func (l *ZapLogger) WithContext(ctx context.Context) Logger {
	return l.WithFields(contextFields(ctx))
}

// WithComponent adds component name to the logger
func (l *ZapLogger) WithComponent(component string) Logger {
	return &ZapLogger{sugar: l.sugar.With("component", component)}
}
