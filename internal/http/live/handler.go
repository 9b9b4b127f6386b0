package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/logging"
)

type UseCase interface {
	Current() (domain.Board, bool)
}

// Handler подключает клиентов живой доски по websocket.
type Handler struct {
	hub      *Hub
	useCase  UseCase
	upgrader websocket.Upgrader
}

func New(hub *Hub, useCase UseCase) *Handler {
	return &Handler{
		hub:     hub,
		useCase: useCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Доска публичная, подключаться можно с любой страницы.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) Register(router chi.Router) {
	router.Get("/ws", h.handle)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrader уже ответил клиенту ошибкой.
		slog.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	c := newClient(uuid.New().String(), conn)
	ctx := logging.WithLogClientID(context.WithoutCancel(r.Context()), c.id)
	h.hub.register(c)
	slog.InfoContext(ctx, "live client connected")

	// Новый клиент сразу получает последнюю собранную доску.
	if board, ok := h.useCase.Current(); ok {
		if message, err := json.Marshal(board); err == nil {
			c.enqueue(message)
		}
	}

	go c.writePump()
	c.readPump()

	h.hub.unregister(c)
	slog.InfoContext(ctx, "live client disconnected")
}
