package farm

// Snapshot is the persisted payload of a farm. Field names and shapes are
// the save-file contract; changing them breaks existing slots.
type Snapshot struct {
	Day    int             `json:"day"`
	Player PlayerSnapshot  `json:"player"`
	Soil   SoilSnapshot    `json:"soil"`
	Plants []PlantSnapshot `json:"plants"`
}

// PlayerSnapshot is the persisted player block.
type PlayerSnapshot struct {
	Money         int            `json:"money"`
	Inventory     map[string]int `json:"inventory"`
	SeedInventory map[string]int `json:"seed_inventory"`
	Pos           [2]float64     `json:"pos"`
	Status        string         `json:"status"`
	Facing        string         `json:"facing"`
}

// SoilSnapshot is the persisted soil block. Grid is indexed [y][x] and each
// cell lists single-letter flags: F farmable, X tilled, W watered, P planted.
type SoilSnapshot struct {
	Grid     [][][]string `json:"grid"`
	TileSize int          `json:"tile_size"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
}

// PlantSnapshot is one persisted crop.
type PlantSnapshot struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Type        string `json:"type"`
	GrowthStage int    `json:"growth_stage"`
}

// RestoreReport summarizes the liberties a restore took with the payload.
type RestoreReport struct {
	// SkippedPlants counts plant entries dropped for lying outside the
	// restored grid.
	SkippedPlants int
	// Relocated is set when the player position was implausibly far from
	// every crop and was moved to the first one.
	Relocated bool
}

const (
	flagFarmable = "F"
	flagTilled   = "X"
	flagWatered  = "W"
	flagPlanted  = "P"
)

func flagStrings(t TileFlags) []string {
	out := []string{}
	if t.Has(TileFarmable) {
		out = append(out, flagFarmable)
	}
	if t.Has(TileTilled) {
		out = append(out, flagTilled)
	}
	if t.Has(TileWatered) {
		out = append(out, flagWatered)
	}
	if t.Has(TilePlanted) {
		out = append(out, flagPlanted)
	}
	return out
}

func parseFlags(cell []string) TileFlags {
	var t TileFlags
	for _, f := range cell {
		switch f {
		case flagFarmable:
			t = t.With(TileFarmable)
		case flagTilled:
			t = t.With(TileTilled)
		case flagWatered:
			t = t.With(TileWatered)
		case flagPlanted:
			t = t.With(TilePlanted)
		}
	}
	return t
}

// Snapshot captures the farm as a persistable payload. Inventories are
// copied, not aliased.
func (f *Farm) Snapshot() Snapshot {
	g := f.Soil
	grid := make([][][]string, g.Height())
	for y := 0; y < g.Height(); y++ {
		row := make([][]string, g.Width())
		for x := 0; x < g.Width(); x++ {
			row[x] = flagStrings(g.TileAt(x, y))
		}
		grid[y] = row
	}

	plants := make([]PlantSnapshot, 0, len(g.Crops()))
	for _, c := range g.Crops() {
		plants = append(plants, PlantSnapshot{
			X: c.Tile.X, Y: c.Tile.Y, Type: c.Type, GrowthStage: c.Stage,
		})
	}

	return Snapshot{
		Day: f.Day,
		Player: PlayerSnapshot{
			Money:         f.Player.Money,
			Inventory:     f.Player.Items.Clone(),
			SeedInventory: f.Player.Seeds.Clone(),
			Pos:           [2]float64{f.Player.Pos.X, f.Player.Pos.Y},
			Status:        f.Player.Status,
			Facing:        string(f.Player.Facing),
		},
		Soil: SoilSnapshot{
			Grid:     grid,
			TileSize: g.TileSize(),
			Width:    g.Width(),
			Height:   g.Height(),
		},
		Plants: plants,
	}
}

// Restore replaces the farm's persisted state wholesale from a snapshot:
// day counter, player wallet and inventories, soil flags and dimensions, and
// crops. Plant entries outside the restored grid are skipped and counted.
// A player position implausibly far from every crop is relocated to the
// first crop's tile. Trees are layout state and are left alone.
func (f *Farm) Restore(s Snapshot) RestoreReport {
	var report RestoreReport

	f.Day = s.Day
	f.Soil.restoreTiles(s.Soil)

	for _, p := range s.Plants {
		if !f.Soil.placeRestoredCrop(p.X, p.Y, p.Type, p.GrowthStage) {
			report.SkippedPlants++
		}
	}

	pl := f.Player
	pl.Money = s.Player.Money
	pl.Items = Inventory{}
	for id, n := range s.Player.Inventory {
		pl.Items[id] = n
	}
	pl.Seeds = Inventory{}
	for id, n := range s.Player.SeedInventory {
		pl.Seeds[id] = n
	}
	pl.Facing = ParseDirection(s.Player.Facing)
	pl.Status = s.Player.Status
	if pl.Status == "" {
		pl.SetIdle()
	}
	pl.Pos = Vec{X: s.Player.Pos[0], Y: s.Player.Pos[1]}

	if f.relocateIfImplausible() {
		report.Relocated = true
	}
	return report
}

// restoreTiles swaps in grid dimensions and flags from the persisted block,
// dropping all live crops. The stage lookup and change hook survive.
func (g *SoilGrid) restoreTiles(s SoilSnapshot) {
	width, height := s.Width, s.Height
	if width <= 0 || height <= 0 {
		width, height = g.width, g.height
	}
	if s.TileSize > 0 {
		g.tileSize = s.TileSize
	}
	g.width = width
	g.height = height
	g.tiles = make([]TileFlags, width*height)
	for y := 0; y < height && y < len(s.Grid); y++ {
		row := s.Grid[y]
		for x := 0; x < width && x < len(row); x++ {
			g.tiles[y*width+x] = parseFlags(row[x])
		}
	}
	g.crops = nil
	g.byTile = make(map[Point]*Crop)
	g.notifyChange()
}

// placeRestoredCrop rebuilds one crop from a persisted plant entry. Entries
// outside the grid are rejected; stages clamp into the crop's valid range.
func (g *SoilGrid) placeRestoredCrop(tx, ty int, cropType string, stage int) bool {
	if !g.InBounds(tx, ty) {
		return false
	}
	p := Point{X: tx, Y: ty}
	if _, occupied := g.byTile[p]; occupied {
		return false
	}
	i := ty*g.width + tx
	g.tiles[i] = g.tiles[i].With(TileTilled | TilePlanted)
	c := &Crop{Tile: p, Type: cropType, Stage: stage, MaxStage: g.maxStageFor(cropType)}
	if c.Stage < 0 {
		c.Stage = 0
	}
	if c.Stage > c.MaxStage {
		c.Stage = c.MaxStage
	}
	g.crops = append(g.crops, c)
	g.byTile[p] = c
	return true
}

// relocateIfImplausible moves the player to the first crop when the restored
// position is farther than the farm's pixel diagonal from every crop.
func (f *Farm) relocateIfImplausible() bool {
	crops := f.Soil.Crops()
	if len(crops) == 0 {
		return false
	}
	b := f.Bounds()
	threshold := Vec{}.Dist(Vec{X: b.MaxX, Y: b.MaxY})
	for _, c := range crops {
		if f.Player.Pos.Dist(TileCenter(c.Tile, f.Soil.TileSize())) <= threshold {
			return false
		}
	}
	f.Player.Pos = TileCenter(crops[0].Tile, f.Soil.TileSize())
	return true
}
