package farm

// Crop is a planted crop occupying one tilled tile. Stage runs from 0 to
// MaxStage; once MaxStage is reached the crop is mature and stays mature
// until harvested. Growth never regresses.
type Crop struct {
	Tile     Point
	Type     string
	Stage    int
	MaxStage int
}

// Advance moves the crop one growth stage forward, saturating at MaxStage.
// A single call never advances more than one stage.
func (c *Crop) Advance() {
	if c.Stage < c.MaxStage {
		c.Stage++
	}
}

// Harvestable reports whether the crop reached its final stage.
func (c *Crop) Harvestable() bool { return c.Stage >= c.MaxStage }
