package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	archiveboard "github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/archive_board"
	archivemonths "github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/archive_months"
	boardcurrent "github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/board_current"
	boardrefresh "github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/board_refresh"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/common"
	lotterypreview "github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/lottery_preview"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/handler/page"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/live"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/middleware"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/http/swagger"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/render"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/service"
)

// Handler агрегирует HTTP-эндпоинты.
type Handler struct {
	service     *service.Service
	renderer    *render.Renderer
	hub         *live.Hub
	swaggerSpec []byte
}

func New(service *service.Service, renderer *render.Renderer, hub *live.Hub, spec []byte) *Handler {
	return &Handler{service: service, renderer: renderer, hub: hub, swaggerSpec: spec}
}

// Router возвращает готовый chi.Router со всеми зарегистрированными маршрутами и middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	// Middleware применяются в порядке объявления
	r.Use(chimw.RequestID)              // Добавляет уникальный ID каждому запросу
	r.Use(chimw.RealIP)                 // Определяет реальный IP клиента
	r.Use(middleware.PanicMiddleware)   // Перехватывает паники
	r.Use(middleware.LoggerMiddleware)  // Логирует все запросы
	r.Use(middleware.MetricsMiddleware) // Собирает метрики Prometheus
	swagger.RegisterRoutes(r, h.swaggerSpec)

	// Health check эндпоинт для проверки доступности сервиса
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.HealthCheck(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			common.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheus metrics endpoint для сбора метрик
	r.Handle("/metrics", promhttp.Handler())

	page.New(h.service, h.renderer).Register(r)
	live.New(h.hub, h.service).Register(r)
	h.registerAPIRoutes(r)

	return r
}

func (h *Handler) registerAPIRoutes(r chi.Router) {
	r.Route("/api", func(router chi.Router) {
		boardcurrent.New(h.service).Register(router)
		boardrefresh.New(h.service).Register(router)
		archivemonths.New(h.service).Register(router)
		archiveboard.New(h.service).Register(router)
		lotterypreview.New(h.service).Register(router)
	})
}
