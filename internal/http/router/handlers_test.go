package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/config"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/live"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/infrastructure/nower"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/lottery"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/render"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/service"
)

type stubFetcher struct{}

func (stubFetcher) CommitsSince(context.Context, time.Time) (domain.CommitPage, error) {
	return domain.CommitPage{
		Commits: []domain.Commit{
			{SHA: "c1", AuthorName: "alice", AuthoredAt: time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC)},
			{SHA: "c2", AuthorName: "bob", AuthoredAt: time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC)},
		},
		RateLimitRemaining: 58,
	}, nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		GitHub: config.GitHubConfig{Owner: "ANA-CNU", Repo: "ANA-Daily-Algorithm"},
		Board:  config.BoardConfig{Timezone: "Asia/Seoul", SeedFormat: lottery.DefaultSeedFormat, CacheTTL: time.Minute},
	}
	svc := service.New(stubFetcher{}, nil, cfg, nil, nower.Fixed(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)))
	hub := live.NewHub()
	t.Cleanup(hub.Close)
	return New(svc, render.New(cfg.Board.Location()), hub, nil).Router()
}

func TestRouterProvidesHealthAndMetrics(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterServesBoardRoutes(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/", http.StatusOK, "alice: 1 문제"},
		{http.MethodGet, "/api/board", http.StatusOK, `"seed":"ANA-2}"`},
		{http.MethodPost, "/api/board/refresh", http.StatusOK, `"rate_limit_remaining":58`},
		{http.MethodGet, "/api/archive", http.StatusServiceUnavailable, "ARCHIVE_DISABLED"},
		{http.MethodGet, "/api/archive/2024-04", http.StatusServiceUnavailable, "ARCHIVE_DISABLED"},
		{http.MethodGet, "/api/archive/not-a-month", http.StatusBadRequest, "VALIDATION_ERROR"},
		{http.MethodGet, "/api/lottery/preview?entry=a&entry=b", http.StatusOK, `"seed":"ANA-2}"`},
		{http.MethodGet, "/swagger/openapi.yml", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			require.Equal(t, tt.status, rec.Code)
			require.Contains(t, rec.Body.String(), tt.body)
		})
	}
}
