package farm

// Direction is a cardinal facing.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Vector returns the unit displacement for the direction.
func (d Direction) Vector() Vec {
	switch d {
	case DirUp:
		return Vec{Y: -1}
	case DirDown:
		return Vec{Y: 1}
	case DirLeft:
		return Vec{X: -1}
	case DirRight:
		return Vec{X: 1}
	}
	return Vec{}
}

// ParseDirection normalizes a stored facing string, defaulting to down for
// anything unknown.
func ParseDirection(s string) Direction {
	switch Direction(s) {
	case DirUp, DirDown, DirLeft, DirRight:
		return Direction(s)
	}
	return DirDown
}

// Player is the farmer: position, facing, wallet, the two inventories, and
// the hotbar selection. Positions are pixel centers.
type Player struct {
	Pos    Vec
	Facing Direction
	Status string

	Money int
	Items Inventory
	Seeds Inventory

	Hotbar   []string
	Selected int
}

// NewPlayer builds a player at the given position with the opening loadout:
// starting money, starting seeds for every catalog crop, and zeroed produce
// counts so inventories list every known item.
func NewPlayer(pos Vec, catalog Catalog) *Player {
	p := &Player{
		Pos:      pos,
		Facing:   DirDown,
		Status:   string(DirDown) + "_idle",
		Money:    StartingMoney,
		Items:    Inventory{},
		Seeds:    Inventory{},
		Hotbar:   catalog.HotbarOrDefault(),
		Selected: 0,
	}
	for _, d := range catalog.Crops {
		p.Seeds[d.Seed] = StartingSeedCount
		p.Items[d.Produce] = 0
	}
	for _, m := range catalog.Materials {
		p.Items[m.ID] = 0
	}
	return p
}

// SelectedID returns the item id in the selected hotbar slot.
func (p *Player) SelectedID() string {
	if p.Selected < 0 || p.Selected >= len(p.Hotbar) {
		return ""
	}
	return p.Hotbar[p.Selected]
}

// Footprint returns the player's collision and harvest rectangle.
func (p *Player) Footprint() Rect {
	return RectAround(p.Pos, PlayerFootprintW, PlayerFootprintH)
}

// TargetPoint returns the pixel the player is reaching at: the position
// offset one tile in the facing direction.
func (p *Player) TargetPoint() Vec {
	return p.Pos.Add(p.Facing.Vector().Scale(TileSize))
}

// TargetTile returns the tile the player is reaching at.
func (p *Player) TargetTile() Point {
	return TileOf(p.TargetPoint(), TileSize)
}

// SetIdle stamps the idle status for the current facing.
func (p *Player) SetIdle() { p.Status = string(p.Facing) + "_idle" }

// SetActivity stamps the status for the current facing and activity, such
// as a tool swing.
func (p *Player) SetActivity(activity string) {
	p.Status = string(p.Facing) + "_" + activity
}
