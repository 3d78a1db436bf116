package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// consoleHandler prints operator-facing log lines as
// "[2026/01/30 12:04:05] [module] message", keys hidden. The module name
// arrives as the single attribute attached by the Logger wrapper.
type consoleHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	mu    *sync.Mutex
	out   io.Writer
}

func newConsoleHandler(out io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &consoleHandler{level: level, mu: &sync.Mutex{}, out: out}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	child := *h
	child.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &child
}

func (h *consoleHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder
	line.WriteString(r.Time.Format("[2006/01/02 15:04:05]"))
	collect := func(a slog.Attr) bool {
		fmt.Fprintf(&line, " [%s]", a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)
	line.WriteString(" " + r.Message + " \n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line.String())
	return err
}
