package live

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/metrics"
)

// Hub рассылает пересобранные доски всем подключённым клиентам.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	metrics.LiveClients.Inc()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	metrics.LiveClients.Dec()
}

// Clients количество подключённых клиентов.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast отправляет доску всем клиентам. Подходит как подписчик Service.Subscribe.
func (h *Hub) Broadcast(board domain.Board) {
	message, err := json.Marshal(board)
	if err != nil {
		slog.Error("failed to encode board for live clients", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.enqueue(message)
	}
}

// Close отключает всех клиентов.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for id, c := range h.clients {
		clients = append(clients, c)
		delete(h.clients, id)
		metrics.LiveClients.Dec()
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
