package common

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/logging"
)

// APIError тело ответа с ошибкой.
type APIError struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON-ответ с указанным статус-кодом.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// BadRequest отправляет JSON-ответ со статусом 400.
func BadRequest(w http.ResponseWriter, code, message string) {
	RespondJSON(w, http.StatusBadRequest, APIError{
		Error: APIErrorBody{Code: code, Message: message},
	})
}

// HTTPError описывает контролируемую HTTP-ошибку.
type HTTPError struct {
	status  int
	code    string
	message string
}

func (e *HTTPError) Error() string {
	return e.message
}

// NewHTTPError создаёт новую HTTP-ошибку.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		status:  status,
		code:    code,
		message: message,
	}
}

// NewBadRequestError создаёт 400 ошибку.
func NewBadRequestError(code, message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, code, message)
}

// WithErrorHandling оборачивает обработчик, централизуя выдачу ошибок.
// Преобразует доменные ошибки в HTTP-ответы с соответствующими статус-кодами.
func WithErrorHandling(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			var httpErr *HTTPError
			// Если ошибка уже является HTTPError, используем её статус и код
			if errors.As(err, &httpErr) {
				RespondJSON(w, httpErr.status, APIError{
					Error: APIErrorBody{Code: httpErr.code, Message: httpErr.message},
				})
				return
			}
			// Иначе преобразуем доменную ошибку в HTTP-ответ
			WriteDomainError(w, r, err)
		}
	}
}

// WriteDomainError преобразует доменные ошибки в HTTP-ответы.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := logging.ErrorCtx(r.Context(), err)

	switch {
	case errors.Is(err, domain.ErrInvalidMonth), errors.Is(err, domain.ErrInvalidInput):
		slog.DebugContext(ctx, "invalid input", "error", err)
		RespondJSON(w, http.StatusBadRequest, APIError{Error: APIErrorBody{Code: "VALIDATION_ERROR", Message: err.Error()}})
	case errors.Is(err, domain.ErrBoardNotFound):
		slog.DebugContext(ctx, "board not found", "error", err)
		RespondJSON(w, http.StatusNotFound, APIError{Error: APIErrorBody{Code: "NOT_FOUND", Message: err.Error()}})
	case errors.Is(err, domain.ErrArchiveDisabled):
		slog.DebugContext(ctx, "archive disabled", "error", err)
		RespondJSON(w, http.StatusServiceUnavailable, APIError{Error: APIErrorBody{Code: "ARCHIVE_DISABLED", Message: err.Error()}})
	case errors.Is(err, domain.ErrFetchCommits):
		slog.WarnContext(ctx, "github unavailable", "error", err)
		RespondJSON(w, http.StatusBadGateway, APIError{Error: APIErrorBody{Code: "UPSTREAM_ERROR", Message: err.Error()}})
	case errors.Is(err, context.DeadlineExceeded):
		slog.WarnContext(ctx, "operation timed out", "error", err)
		RespondJSON(w, http.StatusGatewayTimeout, APIError{Error: APIErrorBody{Code: "TIMEOUT", Message: "operation timed out"}})
	default:
		slog.ErrorContext(ctx, "unhandled domain error", "error", err)
		RespondJSON(w, http.StatusInternalServerError, APIError{Error: APIErrorBody{Code: "INTERNAL_ERROR", Message: "internal server error"}})
	}
}
