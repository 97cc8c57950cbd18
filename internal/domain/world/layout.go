package world

// Layout is the generated terrain of a farm: which tiles accept tilling,
// where trees stand, and where the player starts. Layouts are produced by a
// provider adapter and consumed once at session build.
type Layout struct {
	Width    int
	Height   int
	TileSize int

	// Farmable is indexed [y*Width+x]; true tiles accept the hoe.
	Farmable []bool

	Trees []TreePlacement

	// SpawnX and SpawnY are the player start tile.
	SpawnX int
	SpawnY int
}

// TreePlacement is one generated tree site.
type TreePlacement struct {
	X      int
	Y      int
	Apples int
}

// FarmableAt reports whether the tile accepts tilling. Out-of-range tiles do
// not.
func (l Layout) FarmableAt(x, y int) bool {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return false
	}
	if len(l.Farmable) != l.Width*l.Height {
		return false
	}
	return l.Farmable[y*l.Width+x]
}
