package page

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/common"
)

// Handler отдаёт HTML-страницу текущей доски.
type Handler struct {
	useCase  UseCase
	renderer Renderer
}

func New(useCase UseCase, renderer Renderer) *Handler {
	return &Handler{useCase: useCase, renderer: renderer}
}

func (h *Handler) Register(router chi.Router) {
	router.Get("/", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	board, err := h.useCase.Board(r.Context())
	if err != nil {
		return err
	}
	// Рендерим в буфер, чтобы при ошибке шаблона не отдать половину страницы.
	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, board); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
	return nil
}
