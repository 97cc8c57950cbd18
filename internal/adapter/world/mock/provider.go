package mock

import (
	"context"

	"farmverse/internal/domain/world"
)

type Provider struct {
	Layout world.Layout
}

func (p Provider) GenerateLayout(_ context.Context) (world.Layout, error) {
	l := p.Layout
	if l.Width == 0 {
		l = SmallLayout()
	}
	return l, nil
}

// SmallLayout is a 6x5 map with a farmable core, one apple tree in the
// corner, and a center spawn. Handy for handler and session tests.
func SmallLayout() world.Layout {
	l := world.Layout{
		Width:    6,
		Height:   5,
		TileSize: 48,
		Farmable: make([]bool, 6*5),
		Trees:    []world.TreePlacement{{X: 4, Y: 1, Apples: 2}},
		SpawnX:   2,
		SpawnY:   2,
	}
	for y := 1; y < l.Height-1; y++ {
		for x := 1; x < l.Width-1; x++ {
			if x == 4 && y == 1 {
				continue
			}
			l.Farmable[y*l.Width+x] = true
		}
	}
	return l
}
