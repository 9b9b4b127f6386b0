package archiveboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/common"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/logging"
)

// Handler реализует HTTP-эндпоинт доски из архива.
type Handler struct {
	useCase UseCase
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Register(router chi.Router) {
	router.Get("/archive/{month}", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	month := chi.URLParam(r, "month")
	if month == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "month обязателен")
	}
	ctx := logging.WithLogMonth(r.Context(), month)
	board, err := h.useCase.ArchivedBoard(ctx, month)
	if err != nil {
		return logging.WrapError(ctx, err)
	}
	common.RespondJSON(w, http.StatusOK, board)
	return nil
}
