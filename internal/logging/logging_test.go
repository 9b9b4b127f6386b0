package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	records []slog.Record
	level   slog.Level
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	h.records = append(h.records, rec.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func recordAttrs(rec slog.Record) map[string]any {
	attrs := map[string]any{}
	rec.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})
	return attrs
}

func TestLoggerImplAddsBoardFields(t *testing.T) {
	base := &recordingHandler{}
	logger := NewLoggerImpl(base)

	ctx := WithLogRequestID(context.Background(), "req-1")
	ctx = WithLogRepository(ctx, "ANA-CNU/ANA-Daily-Algorithm")
	ctx = WithLogMonth(ctx, "2024-05")
	ctx = WithLogSeed(ctx, "ANA-4}")
	ctx = WithLogCommitsCount(ctx, 5)

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "board rebuilt", 0)
	require.NoError(t, logger.Handle(ctx, rec))

	require.Len(t, base.records, 1)
	attrs := recordAttrs(base.records[0])
	require.Equal(t, "req-1", attrs["request_id"])
	require.Equal(t, "ANA-CNU/ANA-Daily-Algorithm", attrs["repository"])
	require.Equal(t, "2024-05", attrs["month"])
	require.Equal(t, "ANA-4}", attrs["seed"])
	require.EqualValues(t, 5, attrs["commits_count"])
	require.NotContains(t, attrs, "status")
	require.NotContains(t, attrs, "client_id")
	require.NotContains(t, attrs, "source")
}

func TestLoggerImplAddsSource(t *testing.T) {
	base := &recordingHandler{}
	logger := NewLoggerImpl(base)

	var pcs [1]uintptr
	runtime.Callers(1, pcs[:])
	rec := slog.NewRecord(time.Now(), slog.LevelWarn, "stale board", pcs[0])
	require.NoError(t, logger.Handle(context.Background(), rec))

	source, ok := recordAttrs(base.records[0])["source"].(string)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(source, "logging_test.go:"), source)
}

func TestLoggerImplWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLoggerImpl(slog.NewJSONHandler(&buf, nil)))

	ctx := WithLogClientID(context.Background(), "client-7")
	logger.InfoContext(ctx, "live client connected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "live client connected", entry["msg"])
	require.Equal(t, "client-7", entry["client_id"])
}

func TestLoggerImplEnabledDelegates(t *testing.T) {
	base := &recordingHandler{level: slog.LevelWarn}
	logger := NewLoggerImpl(base)
	require.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestLoggerImplWithersWrapHandler(t *testing.T) {
	logger := NewLoggerImpl(&recordingHandler{})
	require.IsType(t, &LoggerImpl{}, logger.WithAttrs(nil))
	require.IsType(t, &LoggerImpl{}, logger.WithGroup("board"))
}
