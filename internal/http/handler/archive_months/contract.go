package archivemonths

import "context"

type UseCase interface {
	ArchivedMonths(ctx context.Context) ([]string, error)
}
