package lotterypreview

import (
	"context"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

type UseCase interface {
	PreviewDraw(ctx context.Context, entries []string, seed string) (domain.LotteryDraw, error)
}
