// Package logx wraps log/slog with a compact line format suited to CLI
// output: a level prefix, the message, then key=value attributes.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with convenience constructors and Fatal.
type Logger struct {
	*slog.Logger
}

type lineHandler struct {
	level  slog.Level
	output io.Writer
	attrs  []slog.Attr
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	switch r.Level {
	case slog.LevelDebug:
		b.WriteString("DEBUG ")
	case slog.LevelWarn:
		b.WriteString("WARN  ")
	case slog.LevelError:
		b.WriteString("ERROR ")
	default:
		b.WriteString("INFO  ")
	}

	b.WriteString(r.Message)

	writeAttr := func(a slog.Attr) {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(a.Value.String())
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})

	b.WriteString("\n")
	_, err := h.output.Write([]byte(b.String()))
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &lineHandler{level: h.level, output: h.output, attrs: merged}
}

func (h *lineHandler) WithGroup(string) slog.Handler {
	// Groups are flattened; the CLI format has no use for nesting.
	return h
}

// New creates a logger writing to output at the given level. A nil output
// defaults to stdout.
func New(level slog.Level, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}
	return &Logger{Logger: slog.New(&lineHandler{level: level, output: output})}
}

// NewDefault creates an INFO-level logger on stdout.
func NewDefault() *Logger {
	return New(slog.LevelInfo, os.Stdout)
}

// NewVerbose creates a DEBUG-level logger on stdout.
func NewVerbose() *Logger {
	return New(slog.LevelDebug, os.Stdout)
}

// NewQuiet creates a WARN-level logger, suppressing info and debug.
func NewQuiet() *Logger {
	return New(slog.LevelWarn, os.Stdout)
}

// Fatal logs at ERROR level and exits with code 1.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}

// Fatalf formats and logs at ERROR level, then exits with code 1.
func (l *Logger) Fatalf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
