// Package logging provides categorized structured logging for mockforge.
// Every subsystem logs through a named zap logger so log lines can be
// filtered per category. Before Init is called all loggers are no-ops,
// which keeps library code usable from tests without setup.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies a logging subsystem.
type Category string

const (
	CategoryCLI     Category = "cli"     // Command-line entry points
	CategoryConfig  Category = "config"  // Configuration loading
	CategoryLLM     Category = "llm"     // Generation service requests
	CategoryStream  Category = "stream"  // Incremental JSON extraction
	CategoryStudio  Category = "studio"  // Session/artifact orchestration
	CategoryVault   Category = "vault"   // Saved artifact persistence
	CategoryExport  Category = "export"  // Document export
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	loggers = make(map[Category]*zap.Logger)
)

// Init builds the process-wide logger. level is one of debug/info/warn/error
// (empty defaults to info). jsonFormat selects the production JSON encoder;
// otherwise a console encoder is used.
func Init(level string, jsonFormat bool) error {
	var cfg zap.Config
	if jsonFormat {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "", "info":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn", "warning":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %q", level)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	base = logger
	loggers = make(map[Category]*zap.Logger)
	return nil
}

// Get returns the named logger for a category. Safe to call before Init.
func Get(cat Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[cat]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}
	l := base.Named(string(cat))
	loggers[cat] = l
	return l
}

// Sync flushes buffered log entries. Called once at process exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}
