package farm

// Tool ids understood by the actuator.
const (
	ToolHoe     = "hoe"
	ToolWater   = "water"
	ToolAxe     = "axe"
	ToolHarvest = "harvest"
)

// CropDef describes one growable crop: the seed item that plants it, the
// produce item harvesting yields, the number of growth stages, and its shop
// prices. Stages counts the visual stages including stage 0, so the mature
// stage index is Stages-1.
type CropDef struct {
	Type      string
	Seed      string
	Produce   string
	Stages    int
	BuyPrice  int
	SellPrice int
}

// MaxStage returns the mature stage index for the crop.
func (d CropDef) MaxStage() int {
	if d.Stages <= 1 {
		return DefaultMaxStage
	}
	return d.Stages - 1
}

// MaterialDef describes a non-crop item that can be held and sold, such as
// wood or apples.
type MaterialDef struct {
	ID        string
	SellPrice int
}

// Catalog is the data-driven item knowledge of a farm: which ids are tools,
// which are seeds, how crops grow, and what the shop pays and charges.
// Catalogs are immutable after construction.
type Catalog struct {
	Tools     []string
	Crops     []CropDef
	Materials []MaterialDef
	Hotbar    []string
}

// IsTool reports whether id is a known tool.
func (c Catalog) IsTool(id string) bool {
	for _, t := range c.Tools {
		if t == id {
			return true
		}
	}
	return false
}

// IsSeed reports whether id is the seed item of a known crop.
func (c Catalog) IsSeed(id string) bool {
	_, ok := c.CropBySeed(id)
	return ok
}

// CropBySeed resolves the crop planted by the given seed item.
func (c Catalog) CropBySeed(seed string) (CropDef, bool) {
	for _, d := range c.Crops {
		if d.Seed == seed {
			return d, true
		}
	}
	return CropDef{}, false
}

// CropByType resolves a crop definition by crop type.
func (c Catalog) CropByType(cropType string) (CropDef, bool) {
	for _, d := range c.Crops {
		if d.Type == cropType {
			return d, true
		}
	}
	return CropDef{}, false
}

// MaxStageFor returns the mature stage index for a crop type, falling back
// to DefaultMaxStage for types the catalog does not know. Restored saves may
// carry such types and still need a growth ceiling.
func (c Catalog) MaxStageFor(cropType string) int {
	if d, ok := c.CropByType(cropType); ok {
		return d.MaxStage()
	}
	return DefaultMaxStage
}

// BuyPrice returns the purchase price for an item id, or false when the item
// is not for sale. Only seeds are purchasable.
func (c Catalog) BuyPrice(id string) (int, bool) {
	if d, ok := c.CropBySeed(id); ok && d.BuyPrice > 0 {
		return d.BuyPrice, true
	}
	return 0, false
}

// SellPrice returns the price the shop pays for an item id, or false when
// the shop does not buy it.
func (c Catalog) SellPrice(id string) (int, bool) {
	for _, d := range c.Crops {
		if d.Produce == id && d.SellPrice > 0 {
			return d.SellPrice, true
		}
	}
	for _, m := range c.Materials {
		if m.ID == id && m.SellPrice > 0 {
			return m.SellPrice, true
		}
	}
	return 0, false
}

// HotbarOrDefault returns the configured hotbar, or the default layout of
// the four tools plus the first crop's seed when none is configured.
func (c Catalog) HotbarOrDefault() []string {
	if len(c.Hotbar) == HotbarSlots {
		out := make([]string, HotbarSlots)
		copy(out, c.Hotbar)
		return out
	}
	out := []string{ToolHoe, ToolWater, ToolAxe, ToolHarvest}
	if len(c.Crops) > 0 {
		out = append(out, c.Crops[0].Seed)
	} else {
		out = append(out, "")
	}
	return out
}
