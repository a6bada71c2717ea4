// Package logging builds the zap logger used across rolodex.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config level name to a zap level. Unknown names fall
// back to warn.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// New creates a logger at the given level. With an empty file path entries
// go to console as human-readable lines; otherwise they are appended to file
// as JSON. The returned close function syncs and releases the file.
func New(level, file string, console io.Writer) (*zap.Logger, func() error, error) {
	lvl := ParseLevel(level)

	if file == "" {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.TimeKey = ""
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), lvl)
		logger := zap.New(core)
		// Syncing a terminal fails on some platforms, so console sync errors are dropped.
		return logger, func() error { _ = logger.Sync(); return nil }, nil
	}

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: creating directory: %w", err)
		}
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: opening %s: %w", file, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.StacktraceKey = ""

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), lvl)
	logger := zap.New(core, zap.AddCaller())
	closeFn := func() error {
		syncErr := logger.Sync()
		if err := f.Close(); err != nil {
			return err
		}
		return syncErr
	}
	return logger, closeFn, nil
}
