package archiveboard

import (
	"context"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

type UseCase interface {
	ArchivedBoard(ctx context.Context, month string) (domain.Board, error)
}
