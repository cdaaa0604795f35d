// Package logging provides categorized structured logging built on
// go.uber.org/zap (the teacher's logging library, cmd/nerd/main.go).
// Where the teacher scopes each category to its own log file
// (internal/logging/logger.go's per-Category *os.File), revcrew is a
// library-first module with no per-run workspace to write log files
// into, so a category here becomes a zap field on a single logger
// instead of a separate file.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

// Category identifies the subsystem emitting a log line, mirroring
// the teacher's internal/logging.Category enum.
type Category string

const (
	CategoryClassifier Category = "classifier"
	CategoryRouter     Category = "router"
	CategoryGateway    Category = "gateway"
	CategoryAgent      Category = "agent"
	CategoryCache      Category = "cache"
	CategoryScheduler  Category = "scheduler"
	CategoryDedup      Category = "dedup"
	CategoryScore      Category = "score"
	CategoryStream     Category = "stream"
	CategoryReview     Category = "review"
	CategoryVCS        Category = "vcs"
	CategoryCLI        Category = "cli"
)

var (
	mu   sync.RWMutex
	base *zap.Logger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	base = l
}

// Init installs the process-wide base logger. debugMode switches the
// encoder to zap's development config (console-friendly, debug level
// enabled), mirroring cmd/nerd/main.go's NewProductionConfig /
// debug-level switch. jsonFormat forces JSON output even in debug mode.
func Init(debugMode, jsonFormat bool) error {
	cfg := zap.NewProductionConfig()
	if debugMode {
		cfg = zap.NewDevelopmentConfig()
	}
	if jsonFormat {
		cfg.Encoding = "json"
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	mu.Lock()
	base = l
	mu.Unlock()
	return nil
}

// For returns a logger scoped to the given category via a "component" field.
func For(category Category) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With(zap.String("component", string(category))).Sugar()
}

// Sync flushes any buffered log entries; call before process exit.
func Sync() {
	mu.RLock()
	l := base
	mu.RUnlock()
	_ = l.Sync()
}
