package logger

import (
	"context"
	"io"
	"log/slog"
)

type discard struct {
	slog *slog.Logger
}

// NewDiscard returns a logger that drops everything. For tests.
func NewDiscard() Logger {
	return &discard{
		slog: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (l *discard) Debug(ctx context.Context, msg string, args ...any) {}
func (l *discard) Info(ctx context.Context, msg string, args ...any)  {}
func (l *discard) Warn(ctx context.Context, msg string, args ...any)  {}
func (l *discard) Error(ctx context.Context, msg string, err error, args ...any) {
}

func (l *discard) GetSlogLogger() *slog.Logger {
	return l.slog
}
