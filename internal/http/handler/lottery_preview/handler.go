package lotterypreview

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/common"
)

// Handler прогоняет розыгрыш на списке из query: ?entry=a&entry=a&entry=b&seed=...
type Handler struct {
	useCase UseCase
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Register(router chi.Router) {
	router.Get("/lottery/preview", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	entries := query["entry"]
	if entries == nil {
		entries = []string{}
	}
	draw, err := h.useCase.PreviewDraw(r.Context(), entries, query.Get("seed"))
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, draw)
	return nil
}
