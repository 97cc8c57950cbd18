package ports

import (
	"context"

	"farmverse/internal/domain/world"
)

type LayoutProvider interface {
	GenerateLayout(ctx context.Context) (world.Layout, error)
}
