package farm

import "math"

// Config assembles a farm from layout data and the item catalog.
type Config struct {
	Width    int
	Height   int
	TileSize int

	// Farmable masks which tiles accept tilling; nil means all of them.
	Farmable func(x, y int) bool

	// TreeSites places trees by anchor tile with their apple count.
	TreeSites []TreeSite

	// Spawn is the player start tile. A zero value spawns at the grid
	// center.
	Spawn Point

	Catalog Catalog

	// OnSoilChange is forwarded to the soil grid's change hook.
	OnSoilChange func()
}

// TreeSite is a tree placement in layout data.
type TreeSite struct {
	Tile   Point
	Apples int
}

// Farm aggregates the mutable world state of one farm: soil, trees, the
// player, and the day counter. All mutation goes through methods; the
// aggregate is single-writer and free of locks.
type Farm struct {
	Soil    *SoilGrid
	Trees   []*Tree
	Player  *Player
	Day     int
	Catalog Catalog
}

// New builds a farm from the config with a fresh player.
func New(cfg Config) *Farm {
	soil := NewSoilGrid(SoilConfig{
		Width:    cfg.Width,
		Height:   cfg.Height,
		TileSize: cfg.TileSize,
		Farmable: cfg.Farmable,
		MaxStage: cfg.Catalog.MaxStageFor,
		OnChange: cfg.OnSoilChange,
	})
	spawn := cfg.Spawn
	if spawn == (Point{}) {
		spawn = Point{X: soil.Width() / 2, Y: soil.Height() / 2}
	}
	f := &Farm{
		Soil:    soil,
		Player:  NewPlayer(TileCenter(spawn, soil.TileSize()), cfg.Catalog),
		Catalog: cfg.Catalog,
	}
	for _, site := range cfg.TreeSites {
		if soil.InBounds(site.Tile.X, site.Tile.Y) {
			f.Trees = append(f.Trees, NewTree(site.Tile, site.Apples))
		}
	}
	return f
}

// Bounds returns the farm's pixel rectangle.
func (f *Farm) Bounds() Rect {
	ts := float64(f.Soil.TileSize())
	return Rect{MaxX: float64(f.Soil.Width()) * ts, MaxY: float64(f.Soil.Height()) * ts}
}

// MovePlayer walks the player by the input vector for dt seconds. Inputs are
// clamped to the unit range per axis, diagonals are slowed so they match
// cardinal speed, and movement resolves per axis so sliding along obstacles
// works. Facing follows the last input: vertical first, horizontal wins.
func (f *Farm) MovePlayer(dx, dy float64, dt float64) {
	dx = clampUnit(dx)
	dy = clampUnit(dy)
	if dx == 0 && dy == 0 {
		return
	}

	if dy < 0 {
		f.Player.Facing = DirUp
	} else if dy > 0 {
		f.Player.Facing = DirDown
	}
	if dx > 0 {
		f.Player.Facing = DirRight
	} else if dx < 0 {
		f.Player.Facing = DirLeft
	}

	step := PlayerSpeed * dt
	if dx != 0 && dy != 0 {
		step *= DiagonalFactor
	}

	f.moveAxis(dx*step, 0)
	f.moveAxis(0, dy*step)
}

func (f *Farm) moveAxis(mx, my float64) {
	if mx == 0 && my == 0 {
		return
	}
	next := f.Player.Pos.Add(Vec{X: mx, Y: my})
	next = f.clampToBounds(next)
	foot := RectAround(next, PlayerFootprintW, PlayerFootprintH)
	for _, t := range f.Trees {
		if t.Alive && foot.Intersects(t.Solid(f.Soil.TileSize())) {
			return
		}
	}
	f.Player.Pos = next
}

func (f *Farm) clampToBounds(v Vec) Vec {
	b := f.Bounds()
	halfW, halfH := PlayerFootprintW/2, PlayerFootprintH/2
	v.X = math.Max(b.MinX+halfW, math.Min(v.X, b.MaxX-halfW))
	v.Y = math.Max(b.MinY+halfH, math.Min(v.Y, b.MaxY-halfH))
	return v
}

// Commit applies a finished action's effect and reports whether the world
// changed. Rejections at commit time, such as tilling rock or planting on
// occupied soil, are silent no-ops.
func (f *Farm) Commit(a PendingAction) bool {
	switch a.Class {
	case ClassTool:
		return f.commitTool(a)
	case ClassSeed:
		return f.commitSeed(a)
	}
	return false
}

func (f *Farm) commitTool(a PendingAction) bool {
	switch a.ID {
	case ToolHoe:
		return f.Soil.Till(a.Target.X, a.Target.Y)
	case ToolWater:
		watered := false
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if f.Soil.Water(a.Target.X+dx, a.Target.Y+dy) {
					watered = true
				}
			}
		}
		return watered
	case ToolAxe:
		return f.ChopAt(TileCenter(a.Target, f.Soil.TileSize()))
	}
	return false
}

func (f *Farm) commitSeed(a PendingAction) bool {
	crop, ok := f.Catalog.CropBySeed(a.ID)
	if !ok {
		return false
	}
	if f.Player.Seeds.Count(a.ID) <= 0 {
		return false
	}
	if !f.Soil.Plant(a.Target.X, a.Target.Y, crop.Type) {
		return false
	}
	return f.Player.Seeds.Consume(a.ID, 1)
}

// ChopAt lands an axe hit on the first living tree whose region contains the
// pixel point. Drops go straight to the player's item inventory.
func (f *Farm) ChopAt(point Vec) bool {
	for _, t := range f.Trees {
		if !t.Alive || !t.Region(f.Soil.TileSize()).Contains(point) {
			continue
		}
		for _, drop := range t.Damage() {
			f.Player.Items.Add(drop, 1)
		}
		return true
	}
	return false
}

// Harvest gathers at most one mature crop under the player's footprint and
// books its produce into the item inventory. It returns the produce id.
func (f *Farm) Harvest() (string, bool) {
	cropType, ok := f.Soil.HarvestAt(f.Player.Footprint())
	if !ok {
		return "", false
	}
	produce := cropType
	if d, defined := f.Catalog.CropByType(cropType); defined {
		produce = d.Produce
	}
	f.Player.Items.Add(produce, 1)
	return produce, true
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
