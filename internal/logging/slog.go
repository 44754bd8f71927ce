package logging

import (
	"context"
	"log/slog"
)

// TextLogger is the log/slog backend of Logger.
type TextLogger struct {
	h *slog.Logger
}

func NewTextLogger(h *slog.Logger) *TextLogger {
	return &TextLogger{h: h}
}

func (t *TextLogger) log(ctx context.Context, lvl slog.Level, msg string, args []any) {
	if !t.h.Enabled(ctx, lvl) {
		return
	}
	t.h.Log(ctx, lvl, msg, args...)
}

func (t *TextLogger) Debug(ctx context.Context, msg string, args ...any) {
	t.log(ctx, slog.LevelDebug, msg, args)
}

func (t *TextLogger) Info(ctx context.Context, msg string, args ...any) {
	t.log(ctx, slog.LevelInfo, msg, args)
}

func (t *TextLogger) Warn(ctx context.Context, msg string, args ...any) {
	t.log(ctx, slog.LevelWarn, msg, args)
}

func (t *TextLogger) Error(ctx context.Context, msg string, args ...any) {
	t.log(ctx, slog.LevelError, msg, args)
}

func (t *TextLogger) With(args ...any) Logger {
	return &TextLogger{h: t.h.With(args...)}
}
