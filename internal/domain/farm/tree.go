package farm

// Tree is a choppable obstacle anchored to one tile. A living tree blocks
// movement on its anchor tile and takes axe hits; each hit shakes loose an
// apple while any remain, and the felling hit yields wood.
type Tree struct {
	Tile   Point
	HP     int
	Apples int
	Alive  bool
}

// NewTree plants a living tree with full hit points.
func NewTree(tile Point, apples int) *Tree {
	if apples < 0 {
		apples = 0
	}
	return &Tree{Tile: tile, HP: TreeHP, Apples: apples, Alive: true}
}

// Region returns the pixel region an axe swing can hit: the anchor tile plus
// the tile above it, matching the trunk-and-crown footprint.
func (t *Tree) Region(tileSize int) Rect {
	r := TileRect(t.Tile, tileSize)
	r.MinY -= float64(tileSize)
	return r
}

// Solid returns the pixel rectangle that blocks movement: the anchor tile.
// Felled trees block nothing.
func (t *Tree) Solid(tileSize int) Rect {
	return TileRect(t.Tile, tileSize)
}

// Damage applies one axe hit and returns the item ids knocked loose. Hits on
// a felled tree yield nothing.
func (t *Tree) Damage() []string {
	if !t.Alive {
		return nil
	}
	var drops []string
	if t.Apples > 0 {
		t.Apples--
		drops = append(drops, "apple")
	}
	t.HP--
	if t.HP <= 0 {
		t.HP = 0
		t.Alive = false
		drops = append(drops, "wood")
	}
	return drops
}
