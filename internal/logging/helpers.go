package logging

import "context"

func update(ctx context.Context, fn func(*logCtx)) context.Context {
	c, _ := ctx.Value(key).(logCtx)
	fn(&c)
	return context.WithValue(ctx, key, c)
}

// WithLogRequestID добавляет request ID в контекст.
func WithLogRequestID(ctx context.Context, requestID string) context.Context {
	return update(ctx, func(c *logCtx) { c.RequestID = requestID })
}

// WithLogRequestPath добавляет путь запроса в контекст.
func WithLogRequestPath(ctx context.Context, path string) context.Context {
	return update(ctx, func(c *logCtx) { c.Path = path })
}

// WithLogRequestMethod добавляет метод запроса в контекст.
func WithLogRequestMethod(ctx context.Context, method string) context.Context {
	return update(ctx, func(c *logCtx) { c.Method = method })
}

// WithLogRequestStatus добавляет статус ответа в контекст.
func WithLogRequestStatus(ctx context.Context, status int) context.Context {
	return update(ctx, func(c *logCtx) { c.Status = status })
}

// WithLogRequestDuration добавляет длительность запроса в контекст.
func WithLogRequestDuration(ctx context.Context, duration string) context.Context {
	return update(ctx, func(c *logCtx) { c.RequestDuration = duration })
}

// WithLogRepository добавляет owner/repo в контекст.
func WithLogRepository(ctx context.Context, repository string) context.Context {
	return update(ctx, func(c *logCtx) { c.Repository = repository })
}

// WithLogMonth добавляет месяц доски в контекст.
func WithLogMonth(ctx context.Context, month string) context.Context {
	return update(ctx, func(c *logCtx) { c.Month = month })
}

// WithLogSeed добавляет seed розыгрыша в контекст.
func WithLogSeed(ctx context.Context, seed string) context.Context {
	return update(ctx, func(c *logCtx) { c.Seed = seed })
}

// WithLogCommitsCount добавляет количество коммитов в контекст.
func WithLogCommitsCount(ctx context.Context, cnt int) context.Context {
	return update(ctx, func(c *logCtx) { c.CommitsCount = cnt })
}

// WithLogClientID добавляет ID websocket-клиента в контекст.
func WithLogClientID(ctx context.Context, clientID string) context.Context {
	return update(ctx, func(c *logCtx) { c.ClientID = clientID })
}
