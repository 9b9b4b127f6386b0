package logging

import (
	"context"
	"errors"
)

// errorWithLogCtx переносит поля логирования вместе с ошибкой через границы слоёв.
type errorWithLogCtx struct {
	next error
	ctx  logCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.next.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.next
}

// WrapError запоминает в ошибке поля логирования из ctx. nil остаётся nil.
func WrapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	c, _ := ctx.Value(key).(logCtx)
	return &errorWithLogCtx{next: err, ctx: c}
}

// ErrorCtx возвращает ctx, дополненный полями, сохранёнными в ошибке.
// Поля запроса из ctx имеют приоритет, если они заданы.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if !errors.As(err, &e) {
		return ctx
	}
	merged := e.ctx
	if c, ok := ctx.Value(key).(logCtx); ok {
		if c.RequestID != "" {
			merged.RequestID = c.RequestID
		}
		if c.Path != "" {
			merged.Path = c.Path
		}
		if c.Method != "" {
			merged.Method = c.Method
		}
	}
	return context.WithValue(ctx, key, merged)
}
