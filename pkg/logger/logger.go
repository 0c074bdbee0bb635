// Package logger provides structured logging for shape-dsv tools.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Config represents logger configuration.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// Development switches to the human-readable console encoder.
	Development bool
}

// Init initializes the global logger. Only the first call has any effect.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = newLogger(cfg)
	})
	return err
}

// Get returns the global logger, initializing it with defaults when Init was
// never called.
func Get() *zap.Logger {
	if globalLogger == nil {
		_ = Init(Config{Level: "info"})
	}
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

func newLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
