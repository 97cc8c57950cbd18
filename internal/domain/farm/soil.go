package farm

// SoilConfig configures a fresh soil grid.
type SoilConfig struct {
	Width    int
	Height   int
	TileSize int

	// Farmable reports whether the tile at (x, y) accepts tilling. A nil
	// func marks every tile farmable.
	Farmable func(x, y int) bool

	// MaxStage resolves the mature stage index for a crop type. A nil func
	// falls back to DefaultMaxStage for everything.
	MaxStage func(cropType string) int

	// OnChange, when set, is invoked after any mutation that changes tilled
	// soil layout: a successful till and a wholesale restore. Renderers use
	// it to rebuild soil sprites.
	OnChange func()
}

// SoilGrid is the farm's tile field. Tiles carry flag words, crops are kept
// in planting order, and at most one crop occupies a tile. The grid is not
// safe for concurrent use; the session serializes access.
type SoilGrid struct {
	width    int
	height   int
	tileSize int
	tiles    []TileFlags

	crops   []*Crop
	byTile  map[Point]*Crop
	raining bool

	maxStage func(string) int
	onChange func()
}

// NewSoilGrid builds a grid with all tiles untouched. Farmable tiles carry
// the farmable flag; nothing is tilled, watered, or planted.
func NewSoilGrid(cfg SoilConfig) *SoilGrid {
	if cfg.Width <= 0 {
		cfg.Width = DefaultFarmWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultFarmHeight
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = TileSize
	}
	g := &SoilGrid{
		width:    cfg.Width,
		height:   cfg.Height,
		tileSize: cfg.TileSize,
		tiles:    make([]TileFlags, cfg.Width*cfg.Height),
		byTile:   make(map[Point]*Crop),
		maxStage: cfg.MaxStage,
		onChange: cfg.OnChange,
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if cfg.Farmable == nil || cfg.Farmable(x, y) {
				g.tiles[y*g.width+x] = TileFarmable
			}
		}
	}
	return g
}

// Width returns the grid width in tiles.
func (g *SoilGrid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *SoilGrid) Height() int { return g.height }

// TileSize returns the tile edge length in pixels.
func (g *SoilGrid) TileSize() int { return g.tileSize }

// InBounds reports whether the tile coordinates lie on the grid.
func (g *SoilGrid) InBounds(tx, ty int) bool {
	return tx >= 0 && tx < g.width && ty >= 0 && ty < g.height
}

// TileAt returns the flag word at (tx, ty), or zero when out of bounds.
func (g *SoilGrid) TileAt(tx, ty int) TileFlags {
	if !g.InBounds(tx, ty) {
		return 0
	}
	return g.tiles[ty*g.width+tx]
}

// Raining reports the current rain state.
func (g *SoilGrid) Raining() bool { return g.raining }

// SetRaining switches the rain state. Rain itself does not water tiles; the
// day boundary and till both trigger WaterAll while it rains.
func (g *SoilGrid) SetRaining(raining bool) { g.raining = raining }

// Till works the tile at (tx, ty). It fails when the tile is out of bounds,
// not farmable, or already tilled. On success the change hook fires, and if
// it is raining the freshly tilled soil is watered along with the rest of
// the grid.
func (g *SoilGrid) Till(tx, ty int) bool {
	if !g.InBounds(tx, ty) {
		return false
	}
	i := ty*g.width + tx
	if !g.tiles[i].Has(TileFarmable) || g.tiles[i].Has(TileTilled) {
		return false
	}
	g.tiles[i] = g.tiles[i].With(TileTilled)
	if g.raining {
		g.WaterAll()
	}
	g.notifyChange()
	return true
}

// Water wets a single tilled tile. Watering an already wet tile succeeds
// without effect. It fails when the tile is out of bounds or not tilled.
func (g *SoilGrid) Water(tx, ty int) bool {
	if !g.InBounds(tx, ty) {
		return false
	}
	i := ty*g.width + tx
	if !g.tiles[i].Has(TileTilled) {
		return false
	}
	if g.tiles[i].Has(TileWatered) {
		return true
	}
	g.tiles[i] = g.tiles[i].With(TileWatered)
	return true
}

// WaterAll wets every tilled tile. Untouched tiles are unaffected and the
// call is idempotent.
func (g *SoilGrid) WaterAll() {
	for i, t := range g.tiles {
		if t.Has(TileTilled) {
			g.tiles[i] = t.With(TileWatered)
		}
	}
}

// RemoveWater dries the whole grid unconditionally.
func (g *SoilGrid) RemoveWater() {
	for i, t := range g.tiles {
		g.tiles[i] = t.Without(TileWatered)
	}
}

// CountTilled returns the number of tilled tiles.
func (g *SoilGrid) CountTilled() int {
	n := 0
	for _, t := range g.tiles {
		if t.Has(TileTilled) {
			n++
		}
	}
	return n
}

// Plant puts a crop of cropType on the tile at (tx, ty). It fails when the
// tile is out of bounds, not tilled, or already planted. The new crop starts
// at stage zero.
func (g *SoilGrid) Plant(tx, ty int, cropType string) bool {
	if !g.InBounds(tx, ty) {
		return false
	}
	i := ty*g.width + tx
	if !g.tiles[i].Has(TileTilled) || g.tiles[i].Has(TilePlanted) {
		return false
	}
	g.tiles[i] = g.tiles[i].With(TilePlanted)
	c := &Crop{
		Tile:     Point{X: tx, Y: ty},
		Type:     cropType,
		MaxStage: g.maxStageFor(cropType),
	}
	g.crops = append(g.crops, c)
	g.byTile[c.Tile] = c
	return true
}

// CropAt returns the crop on the tile, if any.
func (g *SoilGrid) CropAt(tx, ty int) (*Crop, bool) {
	c, ok := g.byTile[Point{X: tx, Y: ty}]
	return c, ok
}

// Crops returns the live crops in planting order. The slice is shared;
// callers must not mutate it.
func (g *SoilGrid) Crops() []*Crop { return g.crops }

// HarvestAt removes the first harvestable crop whose tile intersects the
// given pixel area, scanning in planting order, and returns its crop type.
// The tile keeps its tilled state but loses the planted and watered flags.
// At most one crop is harvested per call.
func (g *SoilGrid) HarvestAt(area Rect) (string, bool) {
	for idx, c := range g.crops {
		if !c.Harvestable() {
			continue
		}
		if !area.Intersects(TileRect(c.Tile, g.tileSize)) {
			continue
		}
		g.crops = append(g.crops[:idx], g.crops[idx+1:]...)
		delete(g.byTile, c.Tile)
		i := c.Tile.Y*g.width + c.Tile.X
		g.tiles[i] = g.tiles[i].Without(TilePlanted | TileWatered)
		return c.Type, true
	}
	return "", false
}

// UpdatePlants advances every crop whose tile is watered, or every crop when
// it is raining, by exactly one stage. Mature crops stay mature.
func (g *SoilGrid) UpdatePlants() {
	for _, c := range g.crops {
		if g.raining || g.TileAt(c.Tile.X, c.Tile.Y).Has(TileWatered) {
			c.Advance()
		}
	}
}

// HintAt classifies a tilled tile against its four tilled neighbors and
// returns the sprite hint code. Untilled tiles report an empty string.
func (g *SoilGrid) HintAt(tx, ty int) string {
	if !g.TileAt(tx, ty).Has(TileTilled) {
		return ""
	}
	return hintFor(
		g.TileAt(tx, ty-1).Has(TileTilled),
		g.TileAt(tx, ty+1).Has(TileTilled),
		g.TileAt(tx-1, ty).Has(TileTilled),
		g.TileAt(tx+1, ty).Has(TileTilled),
	)
}

func (g *SoilGrid) maxStageFor(cropType string) int {
	if g.maxStage == nil {
		return DefaultMaxStage
	}
	return g.maxStage(cropType)
}

func (g *SoilGrid) notifyChange() {
	if g.onChange != nil {
		g.onChange()
	}
}
