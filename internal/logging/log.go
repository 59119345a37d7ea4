package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Options configures the process-wide logger.
type Options struct {
	// Verbose lowers the stderr threshold to debug.
	Verbose bool
	// JSONFormat switches stderr output to JSON records.
	JSONFormat bool
	// Stderr overrides the output writer (defaults to os.Stderr).
	Stderr io.Writer
}

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// Init installs a logger built from opts. Safe to call more than once;
// worker generations re-init after decoding their request.
func Init(opts Options) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSONFormat {
		handler = slog.NewJSONHandler(stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(stderr, handlerOpts)
	}

	mu.Lock()
	logger = slog.New(handler)
	mu.Unlock()
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs at debug level with key-value attrs.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs at info level with key-value attrs.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs at warn level with key-value attrs.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs at error level with key-value attrs.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}
