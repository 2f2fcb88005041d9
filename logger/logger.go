// Package logger provides a minimal slog-based logging wrapper.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config describes logger settings.
type Config struct {
	Enabled bool
	Level   string
	Format  string // "text" (default) or "json"
	Stdout  bool
	File    string
}

var (
	mu    sync.RWMutex
	base  *slog.Logger
	level = new(slog.LevelVar)

	// State kept so Intercept/Restore can rebuild the handler.
	savedCfg  Config
	savedFile *os.File
	intercept io.Writer // non-nil while the TUI owns the terminal
)

// Init initializes the logger with the provided config. Until Init is
// called every log call is a no-op.
func Init(cfg Config, configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()
	savedCfg = cfg
	level.Set(parseLevel(cfg.Level))

	if !cfg.Enabled {
		base = nil
		return nil
	}

	var initErr error
	if cfg.File != "" {
		path := expandPath(cfg.File, configDir)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			initErr = fmt.Errorf("logger: create log dir: %w", err)
		} else if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
			initErr = fmt.Errorf("logger: open log file: %w", err)
		} else {
			savedFile = f
		}
	}

	rebuild()
	return initErr
}

// Intercept sends terminal-bound log output to w instead of stdout. The
// log file, if any, keeps receiving every record.
func Intercept(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	intercept = w
	if savedCfg.Enabled {
		rebuild()
	}
}

// Restore undoes Intercept.
func Restore() {
	mu.Lock()
	defer mu.Unlock()
	intercept = nil
	if savedCfg.Enabled {
		rebuild()
	}
}

// SetLevel changes the minimum level at runtime.
func SetLevel(l string) {
	level.Set(parseLevel(l))
}

// Close flushes and closes the log file and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	base = nil
	return closeFileLocked()
}

func closeFileLocked() error {
	if savedFile == nil {
		return nil
	}
	err := savedFile.Close()
	savedFile = nil
	return err
}

// rebuild reconstructs the slog handler from current state.
// Must be called with mu held.
func rebuild() {
	var writers []io.Writer
	switch {
	case intercept != nil:
		writers = append(writers, intercept)
	case savedCfg.Stdout:
		writers = append(writers, os.Stdout)
	}
	if savedFile != nil {
		writers = append(writers, savedFile)
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	opts := &slog.HandlerOptions{Level: level}
	out := io.MultiWriter(writers...)
	if strings.EqualFold(savedCfg.Format, "json") {
		base = slog.New(slog.NewJSONHandler(out, opts))
		return
	}
	base = slog.New(slog.NewTextHandler(out, opts))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	log(slog.LevelDebug, msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	log(slog.LevelWarn, msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	log(slog.LevelError, msg, args...)
}

func log(lvl slog.Level, msg string, args ...any) {
	mu.RLock()
	l := base
	mu.RUnlock()

	if l == nil {
		return
	}
	l.Log(context.Background(), lvl, msg, args...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func expandPath(path, configDir string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	if configDir != "" {
		return filepath.Join(configDir, path)
	}
	return path
}
