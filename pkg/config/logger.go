package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BuildLogger constructs a zap logger from the resolved logging settings.
// The caller owns the logger and should Sync it on shutdown.
func BuildLogger(r *Resolved) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(r.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", r.LogLevel, err)
	}

	var cfg zap.Config
	if r.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named(r.AppName), nil
}
