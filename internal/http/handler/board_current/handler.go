package boardcurrent

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/common"
)

// Handler реализует HTTP-эндпоинт текущей доски.
type Handler struct {
	useCase UseCase
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Register(router chi.Router) {
	router.Get("/board", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	board, err := h.useCase.Board(r.Context())
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, board)
	return nil
}
