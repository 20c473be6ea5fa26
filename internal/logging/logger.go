// Package logging provides config-driven categorised file logging.
// Each category writes JSON lines to <dir>/<date>_<category>.log. When debug
// mode is off every logger is a no-op and nothing touches the disk, since
// the terminal belongs to the TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot    Category = "boot"    // start-up, flags, config resolution
	CategoryUI      Category = "ui"      // navigation, view lifecycle
	CategoryPredict Category = "predict" // prediction and health requests
	CategoryConfig  Category = "config"  // config load and live reload
)

// Options mirrors the logging section of the config file.
type Options struct {
	DebugMode  bool
	Level      string // debug, info, warn, error
	Dir        string
	Categories map[string]bool
}

type entry struct {
	logger *zap.Logger
	file   *os.File
}

var (
	mu      sync.RWMutex
	opts    Options
	level   zapcore.Level = zapcore.InfoLevel
	loggers = make(map[Category]*entry)
)

// Initialize applies opts. Loggers handed out earlier keep their old
// destination; call it once at start-up.
func Initialize(o Options) error {
	mu.Lock()
	defer mu.Unlock()

	opts = o
	level = zapcore.InfoLevel
	if o.Level != "" {
		lvl, err := zapcore.ParseLevel(o.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", o.Level, err)
		}
		level = lvl
	}

	if !o.DebugMode {
		return nil
	}
	if o.Dir == "" {
		return fmt.Errorf("log directory required in debug mode")
	}
	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// IsDebugMode returns whether logging is enabled at all.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled returns whether a specific category writes logs.
func IsCategoryEnabled(c Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabled(c)
}

func categoryEnabled(c Category) bool {
	if !opts.DebugMode {
		return false
	}
	enabled, exists := opts.Categories[string(c)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for a category. It returns a no-op
// logger when the category is disabled or its file cannot be opened.
func Get(c Category) *zap.Logger {
	mu.RLock()
	if e, ok := loggers[c]; ok {
		mu.RUnlock()
		return e.logger
	}
	enabled := categoryEnabled(c)
	mu.RUnlock()

	if !enabled {
		return zap.NewNop()
	}

	mu.Lock()
	defer mu.Unlock()
	if e, ok := loggers[c]; ok {
		return e.logger
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", date, c))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", path, err)
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level)
	l := zap.New(core).Named(string(c))

	loggers[c] = &entry{logger: l, file: file}
	return l
}

// CloseAll flushes and closes every open category file and forgets the
// loggers, so the next Get reopens them.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for c, e := range loggers {
		_ = e.logger.Sync()
		_ = e.file.Close()
		delete(loggers, c)
	}
}

// Boot logs an info line to the boot category.
func Boot(msg string, fields ...zap.Field) {
	Get(CategoryBoot).Info(msg, fields...)
}
