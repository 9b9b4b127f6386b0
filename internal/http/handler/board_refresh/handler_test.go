package boardrefresh

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

type stubUseCase struct {
	calls int
}

func (s *stubUseCase) Refresh(ctx context.Context) (domain.Board, error) {
	s.calls++
	return domain.Board{Month: "2024-05"}, nil
}

func TestHandler_RefreshesOnPost(t *testing.T) {
	t.Parallel()

	useCase := &stubUseCase{}
	router := chi.NewRouter()
	New(useCase).Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/board/refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, useCase.calls)
	require.Contains(t, rec.Body.String(), `"month":"2024-05"`)
}

func TestHandler_RejectsGet(t *testing.T) {
	t.Parallel()

	useCase := &stubUseCase{}
	router := chi.NewRouter()
	New(useCase).Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/board/refresh", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Zero(t, useCase.calls)
}
