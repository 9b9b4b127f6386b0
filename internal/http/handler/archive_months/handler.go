package archivemonths

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/common"
)

// Handler отдаёт список месяцев архива.
type Handler struct {
	useCase UseCase
}

type response struct {
	Months []string `json:"months"`
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Register(router chi.Router) {
	router.Get("/archive", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	months, err := h.useCase.ArchivedMonths(r.Context())
	if err != nil {
		return err
	}
	if months == nil {
		months = []string{}
	}
	common.RespondJSON(w, http.StatusOK, response{Months: months})
	return nil
}
