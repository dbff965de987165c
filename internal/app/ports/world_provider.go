package ports

import (
	"context"

	"wildbound/internal/domain/world"
)

type WorldViewProvider interface {
	View(ctx context.Context, w *world.World, center world.Point, radius int) (world.Snapshot, error)
}
