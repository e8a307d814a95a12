// Package logger implements a logging adapter using log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/costwise/internal/core/ports"
	"go.trai.ch/zerr"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	output   io.Writer
	jsonMode bool
}

// New creates a Logger writing pretty output to stderr.
func New() ports.Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

// SetOutput updates the output destination. A nil writer selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging, keeping the output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonMode = enable
	l.rebuild()
}

// rebuild must be called with mu held or before the logger is shared.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error. JSON mode keeps the error structured; pretty mode
// prints the error chain with each level's metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatError(err))
}

// formatError renders err as:
//
//	Error: <message> (k=v ...)
//
//	  Caused by:
//	    → <message> (k=v ...)
//
// Levels without a message only contribute their metadata to the next level.
func formatError(err error) string {
	var lines, pending []string
	for current := err; current != nil; {
		msg, meta, next := splitError(current)
		current = next
		pending = append(pending, meta...)
		if msg == "" && next != nil {
			continue
		}
		if len(pending) > 0 {
			msg += " (" + strings.Join(pending, " ") + ")"
			pending = nil
		}
		switch len(lines) {
		case 0:
			lines = append(lines, "Error: "+msg)
		case 1:
			lines = append(lines, "", "  Caused by:", "    → "+msg)
		default:
			lines = append(lines, "    → "+msg)
		}
	}
	return strings.Join(lines, "\n")
}

// splitError returns the message and sorted metadata of one chain level and the next level.
func splitError(err error) (string, []string, error) {
	z, ok := err.(*zerr.Error) //nolint:errorlint // walks the chain one level at a time
	if !ok {
		return err.Error(), nil, nil
	}

	md := z.Metadata()
	meta := make([]string, 0, len(md))
	for _, k := range slices.Sorted(maps.Keys(md)) {
		meta = append(meta, fmt.Sprintf("%s=%v", k, md[k]))
	}
	return z.Message(), meta, z.Unwrap()
}
