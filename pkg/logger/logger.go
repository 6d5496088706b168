package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger writes to stderr.
func NewLogger(level int) *defaultLogger {
	return NewWithCore(newCore(zapcore.Lock(os.Stderr), level))
}

// NewRotatingLogger writes to stderr and to file, rotating the file once it
// grows past maxSizeMB.
func NewRotatingLogger(level int, file string, maxSizeMB, maxBackups int) *defaultLogger {
	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}

	return NewWithCore(zapcore.NewTee(
		newCore(zapcore.Lock(os.Stderr), level),
		newCore(zapcore.AddSync(rotator), level),
	))
}

func NewWithCore(core zapcore.Core) *defaultLogger {
	return &defaultLogger{sugar: zap.New(core).Sugar()}
}

func ParseLevel(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARNING
	case "error":
		return ERROR
	case "silence", "off":
		return SILENCE
	default:
		return INFO
	}
}

func ZapLevel(level int) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newCore(ws zapcore.WriteSyncer, level int) zapcore.Core {
	if level >= SILENCE {
		return zapcore.NewNopCore()
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), ws, ZapLevel(level))
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.sugar.Debugf(msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.sugar.Infof(msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.sugar.Warnf(msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.sugar.Errorf(msg, a...)
}

func (l *defaultLogger) Sync() error {
	return l.sugar.Sync()
}
