package logging

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

type keyType int

const key = keyType(0)

// logCtx поля запроса и сборки доски, которые попадают в каждую запись.
type logCtx struct {
	RequestID       string
	Status          int
	RequestDuration string
	Method          string
	Path            string
	Repository      string
	Month           string
	Seed            string
	CommitsCount    int
	ClientID        string
}

// attrs возвращает только заполненные поля.
func (c logCtx) attrs() []slog.Attr {
	out := make([]slog.Attr, 0, 10)
	addString := func(k, v string) {
		if v != "" {
			out = append(out, slog.String(k, v))
		}
	}
	addInt := func(k string, v int) {
		if v != 0 {
			out = append(out, slog.Int(k, v))
		}
	}

	addString("request_id", c.RequestID)
	addString("method", c.Method)
	addString("path", c.Path)
	addInt("status", c.Status)
	addString("duration", c.RequestDuration)
	addString("repository", c.Repository)
	addString("month", c.Month)
	addString("seed", c.Seed)
	addInt("commits_count", c.CommitsCount)
	addString("client_id", c.ClientID)
	return out
}

// LoggerImpl дополняет записи полями из контекста и местом вызова.
type LoggerImpl struct {
	next slog.Handler
}

func NewLoggerImpl(next slog.Handler) *LoggerImpl {
	return &LoggerImpl{next: next}
}

func (h *LoggerImpl) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *LoggerImpl) Handle(ctx context.Context, rec slog.Record) error {
	if c, ok := ctx.Value(key).(logCtx); ok {
		rec.AddAttrs(c.attrs()...)
	}

	if rec.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{rec.PC}).Next()
		rec.AddAttrs(slog.String("source", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)))
	}

	return h.next.Handle(ctx, rec)
}

func (h *LoggerImpl) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LoggerImpl{next: h.next.WithAttrs(attrs)}
}

func (h *LoggerImpl) WithGroup(name string) slog.Handler {
	return &LoggerImpl{next: h.next.WithGroup(name)}
}
