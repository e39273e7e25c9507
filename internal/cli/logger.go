package cli

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// buildLogger constructs the zap logger from the global log flags.
func buildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(flags.logLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", flags.logLevel, err)
	}

	var cfg zap.Config
	switch flags.logFormat {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q (want console or json)", flags.logFormat)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
