package archiveboard

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
	calledWith string
}

func (s *stubUseCase) ArchivedBoard(ctx context.Context, month string) (domain.Board, error) {
	s.calledWith = month
	switch month {
	case "2024-04":
		return domain.Board{Month: month, Seed: "ANA-12}"}, nil
	case "april":
		return domain.Board{}, domain.ErrInvalidMonth
	default:
		return domain.Board{}, domain.ErrBoardNotFound
	}
}

func serve(t *testing.T, useCase UseCase, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	New(useCase).Register(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_PassesMonthToUsecase(t *testing.T) {
	t.Parallel()

	useCase := &stubUseCase{}
	rec := serve(t, useCase, "/archive/2024-04")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2024-04", useCase.calledWith)
	require.Contains(t, rec.Body.String(), `"seed":"ANA-12}"`)
}

func TestHandler_MapsErrors(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusBadRequest, serve(t, &stubUseCase{}, "/archive/april").Code)
	require.Equal(t, http.StatusNotFound, serve(t, &stubUseCase{}, "/archive/1999-01").Code)
}
