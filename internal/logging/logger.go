package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production JSON logger at the given level writing to paths
// (stderr when none are given).
func New(level string, paths ...string) (*zap.SugaredLogger, error) {
	return build(zap.NewProductionConfig(), level, paths)
}

// NewConsole builds a human-readable development logger. The terminal table
// uses it with a file path since stdout belongs to the screen.
func NewConsole(level string, paths ...string) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return build(cfg, level, paths)
}

func build(cfg zap.Config, level string, paths []string) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if len(paths) > 0 {
		cfg.OutputPaths = paths
		cfg.ErrorOutputPaths = paths
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}
