package boardcurrent

import (
	"context"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

type UseCase interface {
	Board(ctx context.Context) (domain.Board, error)
}
