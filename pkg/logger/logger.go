// Package logger builds zap loggers from settings.Logger.
package logger

import (
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/go-concurrentqueue/pkg/settings"
)

const defaultLevel = zapcore.InfoLevel

// New returns a JSON logger writing to stdout and, when cfg.FileLogName is
// set, to a size-rotated file.
func New(cfg settings.Logger) (*zap.Logger, error) {
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.FileLogName != "" {
		sinks = append(sinks, zapcore.AddSync(FileWriter(cfg)))
	}
	return NewWithSink(cfg, zapcore.NewMultiWriteSyncer(sinks...))
}

// NewWithSink is New with an explicit destination.
func NewWithSink(cfg settings.Logger, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)
	return zap.New(core, zap.AddCaller()), nil
}

// FileWriter returns the rotating file writer described by cfg.
func FileWriter(cfg settings.Logger) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.FileLogName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return defaultLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return defaultLevel, errors.Wrapf(err, "logger: invalid level %q", name)
	}
	return level, nil
}
