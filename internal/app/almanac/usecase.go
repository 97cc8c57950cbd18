package almanac

import (
	"context"

	"farmverse/internal/app/ports"
)

type UseCase struct {
	Provider ports.GuideProvider
}

func (u UseCase) Index(ctx context.Context) ([]byte, error) {
	return u.Provider.Index(ctx)
}

func (u UseCase) File(ctx context.Context, path string) ([]byte, error) {
	return u.Provider.File(ctx, path)
}
