package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithLogContextHelpersMutateSameStruct(t *testing.T) {
	ctx := context.Background()
	ctx = WithLogRequestID(ctx, "req")
	ctx = WithLogRequestPath(ctx, "/api/board")
	ctx = WithLogRequestMethod(ctx, "GET")
	ctx = WithLogRequestStatus(ctx, 200)
	ctx = WithLogRequestDuration(ctx, "5ms")
	ctx = WithLogRepository(ctx, "ANA-CNU/ANA-Daily-Algorithm")
	ctx = WithLogMonth(ctx, "2024-05")
	ctx = WithLogSeed(ctx, "ANA-12}")
	ctx = WithLogCommitsCount(ctx, 30)
	ctx = WithLogClientID(ctx, "client-1")

	value, ok := ctx.Value(key).(logCtx)
	require.True(t, ok)
	require.Equal(t, "req", value.RequestID)
	require.Equal(t, "/api/board", value.Path)
	require.Equal(t, "GET", value.Method)
	require.Equal(t, 200, value.Status)
	require.Equal(t, "5ms", value.RequestDuration)
	require.Equal(t, "ANA-CNU/ANA-Daily-Algorithm", value.Repository)
	require.Equal(t, "2024-05", value.Month)
	require.Equal(t, "ANA-12}", value.Seed)
	require.Equal(t, 30, value.CommitsCount)
	require.Equal(t, "client-1", value.ClientID)
}

func TestHelpersDoNotLeakIntoParentContext(t *testing.T) {
	parent := WithLogMonth(context.Background(), "2024-04")
	child := WithLogMonth(parent, "2024-05")

	p, _ := parent.Value(key).(logCtx)
	c, _ := child.Value(key).(logCtx)
	require.Equal(t, "2024-04", p.Month)
	require.Equal(t, "2024-05", c.Month)
}
