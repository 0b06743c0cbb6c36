// Package logging provides logger initialization and console warnings.
package logging

import (
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// LevelEnv names the environment variable consulted when no level is given.
const LevelEnv = "LOG_LEVEL"

// NewLogger creates a logr.Logger backed by Zap.
// "debug" or "trace" selects a development config with debug-level output;
// any other value selects the production config. An empty level falls back to
// the LOG_LEVEL environment variable.
// Returns the logger and a sync function the caller should defer.
func NewLogger(level string) (logr.Logger, func(), error) {
	if strings.TrimSpace(level) == "" {
		level = os.Getenv(LevelEnv)
	}
	zapLog, err := newZapLogger(level)
	if err != nil {
		return logr.Logger{}, nil, err
	}
	sync := func() { _ = zapLog.Sync() }
	return zapr.NewLogger(zapLog), sync, nil
}

func newZapLogger(level string) (*zap.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	case "quiet", "error":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
		return cfg.Build()
	}
	return zap.NewProduction()
}
