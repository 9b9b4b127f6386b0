package boardrefresh

import (
	"context"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

type UseCase interface {
	Refresh(ctx context.Context) (domain.Board, error)
}
