package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// splitHandler writes errors to one handler and everything else to another.
type splitHandler struct {
	out, errs slog.Handler
}

func (h *splitHandler) handlerFor(level slog.Level) slog.Handler {
	if level >= slog.LevelError {
		return h.errs
	}
	return h.out
}

func (h *splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handlerFor(level).Enabled(ctx, level)
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handlerFor(r.Level).Handle(ctx, r)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{out: h.out.WithAttrs(attrs), errs: h.errs.WithAttrs(attrs)}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{out: h.out.WithGroup(name), errs: h.errs.WithGroup(name)}
}

// newLogger logs INFO and WARN to out and ERROR to errs.
func newLogger(out, errs io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	return slog.New(&splitHandler{
		out:  slog.NewTextHandler(out, opts),
		errs: slog.NewTextHandler(errs, opts),
	})
}

// setupLogger installs the default logger. With a non-empty logPath every
// record is also appended to that file; the returned func closes it.
func setupLogger(logPath string) (func(), error) {
	if logPath == "" {
		slog.SetDefault(newLogger(os.Stdout, os.Stderr))
		return func() {}, nil
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(newLogger(io.MultiWriter(os.Stdout, f), io.MultiWriter(os.Stderr, f)))
	return func() { f.Close() }, nil
}
