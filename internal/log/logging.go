// Package log provides helpers for creating a configured slog.Logger.
//
// Console output always goes to stderr, stdout is reserved for the
// rendered art. When a log file path is provided, records are also written
// there as plain text.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// LevelTrace defines a custom slog level below Debug for very verbose output.
const LevelTrace slog.Level = -8

func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SetupLogger builds a slog.Logger with a console handler on stderr and an
// optional file handler. Console records are coloured when stderr is a
// terminal and TERM is not "dumb".
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	color := IsTerminal(os.Stderr) && os.Getenv("TERM") != "dumb"
	return NewLogger(os.Stderr, logLevel, logFile, color)
}

// NewLogger is SetupLogger with an explicit console writer.
func NewLogger(console io.Writer, logLevel, logFile string, color bool) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	handlers := []slog.Handler{&consoleHandler{w: console, level: level, color: color}}

	var closeFiles []io.Closer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closeFiles = append(closeFiles, f)
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}
	logger := slog.New(MultiHandler{hs: handlers})
	slog.SetDefault(logger)
	return logger, closeFiles, nil
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}
func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r)
		}
	}
	return nil
}
func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}
func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

type consoleHandler struct {
	w     io.Writer
	level slog.Leveler
	color bool
	attrs []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) paint(code, s string) string {
	if !h.color {
		return s
	}
	return code + s + "\033[0m"
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	buf := strings.Builder{}

	buf.WriteString(h.paint("\033[90m", r.Time.Format("15:04:05.000")))
	buf.WriteString(" ")

	var color string
	switch {
	case r.Level >= slog.LevelError:
		color = "\033[31m"
	case r.Level >= slog.LevelWarn:
		color = "\033[33m"
	case r.Level >= slog.LevelInfo:
		color = "\033[32m"
	case r.Level >= slog.LevelDebug:
		color = "\033[34m"
	default:
		color = "\033[35m"
	}
	name := r.Level.String()
	if r.Level == LevelTrace {
		name = "TRACE"
	}
	buf.WriteString(h.paint(color, fmt.Sprintf("%5s", name)))

	buf.WriteString(" ")
	buf.WriteString(r.Message)

	write := func(a slog.Attr) bool {
		buf.WriteString(" ")
		buf.WriteString(a.Key)
		buf.WriteString("=")
		buf.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	buf.WriteString("\n")
	_, err := h.w.Write([]byte(buf.String()))
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	return h
}
