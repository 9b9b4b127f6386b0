package page

import (
	"context"
	"io"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

type UseCase interface {
	Board(ctx context.Context) (domain.Board, error)
}

type Renderer interface {
	Page(w io.Writer, board domain.Board) error
}
