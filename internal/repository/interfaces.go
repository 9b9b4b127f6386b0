package repository

import (
	"context"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

// BoardRepository архив месячных досок.
type BoardRepository interface {
	SaveBoard(ctx context.Context, board domain.Board) error
	GetBoard(ctx context.Context, repository, month string) (domain.Board, error)
	ListMonths(ctx context.Context, repository string) ([]string, error)
}

// HealthChecker описывает метод проверки соединения.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
