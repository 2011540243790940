package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "produtos-api"

// New creates a new structured logger writing to stdout
func New(env string) *zap.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter creates a logger for env that writes entries to w.
// Production emits JSON at info level, anything else emits colored console
// output at debug level.
func NewWithWriter(env string, w io.Writer) *zap.Logger {
	level := zapcore.DebugLevel
	encoder := zapcore.NewConsoleEncoder(EncoderConfig(env))
	if env == "production" {
		level = zapcore.InfoLevel
		encoder = zapcore.NewJSONEncoder(EncoderConfig(env))
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
		zap.Fields(zap.String("service", serviceName)),
	)
}

// EncoderConfig returns the encoder settings used for env
func EncoderConfig(env string) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if env != "production" {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
