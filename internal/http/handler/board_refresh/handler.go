package boardrefresh

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/common"
)

// Handler принудительно пересобирает доску, минуя кэш.
type Handler struct {
	useCase UseCase
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Register(router chi.Router) {
	router.Post("/board/refresh", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	board, err := h.useCase.Refresh(r.Context())
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, board)
	return nil
}
