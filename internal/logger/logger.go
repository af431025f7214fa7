// Package logger builds the zap logger shared by the commands.
package logger

import (
	"fmt"
	"io"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seedhammer.com/recovery/config"
)

var encCfg = zapcore.EncoderConfig{
	TimeKey:        "date",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// New returns a logger writing human readable lines to console and,
// if cfg.Path is set, JSON lines to daily rotated files. A nil console
// disables console output. The returned function flushes and closes
// the log files.
func New(cfg config.Log, console io.Writer) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), level))
	}
	closeFile := func() error { return nil }
	if cfg.Path != "" {
		rotator, err := rotatelogs.New(
			cfg.Path+"_%Y-%m-%d.log",
			rotatelogs.WithMaxAge(time.Duration(cfg.MaxAgeHour)*time.Hour),
			rotatelogs.WithRotationTime(time.Duration(cfg.RotateHour)*time.Hour),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("logger: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
		closeFile = rotator.Close
	}
	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return log, func() error {
		log.Sync()
		return closeFile()
	}, nil
}
