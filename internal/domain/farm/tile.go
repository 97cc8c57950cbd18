// Package farm holds the pure simulation state of a farm: the soil grid,
// crops, trees, the player, and the actuator that turns player intents into
// timed tile effects. Nothing in this package performs I/O; persistence and
// transport live in adapters.
package farm

// TileFlags is the per-tile state word. Flags compose: Tilled implies
// Farmable, Watered and Planted imply Tilled.
type TileFlags uint8

const (
	// TileFarmable marks soil that accepts tilling.
	TileFarmable TileFlags = 1 << iota
	// TileTilled marks soil that has been worked with the hoe.
	TileTilled
	// TileWatered marks tilled soil that is wet for the current day.
	TileWatered
	// TilePlanted marks tilled soil that carries a crop.
	TilePlanted
)

// Has reports whether every flag in mask is set.
func (f TileFlags) Has(mask TileFlags) bool { return f&mask == mask }

// With returns a copy of f with mask set.
func (f TileFlags) With(mask TileFlags) TileFlags { return f | mask }

// Without returns a copy of f with mask cleared.
func (f TileFlags) Without(mask TileFlags) TileFlags { return f &^ mask }

const (
	hintUp = 1 << iota
	hintDown
	hintLeft
	hintRight
)

// soilHints maps the tilled-neighbor mask of a tile to the sprite hint used
// by renderers. The code names the edges the tile connects on: "o" is an
// isolated patch, "x" is fully surrounded, "lr"/"tb" are straights, two-letter
// codes are corners and three-letter codes are T junctions.
var soilHints = [16]string{
	"o", "b", "t", "tb",
	"r", "br", "tr", "tbl",
	"l", "bl", "tl", "tbr",
	"lr", "lrb", "lrt", "x",
}

// hintFor resolves the rendering hint from the four tilled-neighbor bits.
func hintFor(up, down, left, right bool) string {
	mask := 0
	if up {
		mask |= hintUp
	}
	if down {
		mask |= hintDown
	}
	if left {
		mask |= hintLeft
	}
	if right {
		mask |= hintRight
	}
	return soilHints[mask]
}
