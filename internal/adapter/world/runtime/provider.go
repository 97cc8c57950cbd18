// Package runtime generates farm layouts from layered simplex noise: a
// field mask deciding which tiles accept tilling and an orchard mask
// scattering apple trees over the remaining ground. Layouts are
// deterministic per seed.
package runtime

import (
	"context"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"farmverse/internal/domain/world"
)

type Config struct {
	Width    int
	Height   int
	TileSize int
	Seed     int64

	// BorderMargin is the ring of edge tiles that never farm and never
	// grow trees.
	BorderMargin int

	// FieldLevel is the noise threshold above which a tile is farmable;
	// TreeLevel the threshold above which an off-field tile hosts a tree.
	FieldLevel float64
	TreeLevel  float64

	MaxApples int

	// SpawnX and SpawnY force a start tile; negative values pick a
	// farmable tile near the center.
	SpawnX int
	SpawnY int
}

func DefaultConfig() Config {
	return Config{
		Width:        20,
		Height:       13,
		TileSize:     48,
		Seed:         1,
		BorderMargin: 1,
		FieldLevel:   0.45,
		TreeLevel:    0.62,
		MaxApples:    3,
		SpawnX:       -1,
		SpawnY:       -1,
	}
}

type Provider struct {
	cfg Config
}

func NewProvider(cfg Config) Provider {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = def.TileSize
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.BorderMargin < 0 {
		cfg.BorderMargin = def.BorderMargin
	}
	if cfg.FieldLevel <= 0 {
		cfg.FieldLevel = def.FieldLevel
	}
	if cfg.TreeLevel <= 0 {
		cfg.TreeLevel = def.TreeLevel
	}
	if cfg.MaxApples <= 0 {
		cfg.MaxApples = def.MaxApples
	}
	return Provider{cfg: cfg}
}

func (p Provider) GenerateLayout(_ context.Context) (world.Layout, error) {
	cfg := p.cfg
	field := opensimplex.NewNormalized(cfg.Seed)
	orchard := opensimplex.NewNormalized(cfg.Seed + 1)

	layout := world.Layout{
		Width:    cfg.Width,
		Height:   cfg.Height,
		TileSize: cfg.TileSize,
		Farmable: make([]bool, cfg.Width*cfg.Height),
	}

	farmableCount := 0
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if p.inBorder(x, y) {
				continue
			}
			v := octaveNoise(field, float64(x), float64(y), 3, 0.35, 0.5)
			if v >= cfg.FieldLevel {
				layout.Farmable[y*cfg.Width+x] = true
				farmableCount++
			}
		}
	}
	if farmableCount == 0 {
		farmableCount = p.carveCenterField(&layout)
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if p.inBorder(x, y) || layout.Farmable[y*cfg.Width+x] {
				continue
			}
			o := orchard.Eval2(float64(x)*0.7, float64(y)*0.7)
			if o < cfg.TreeLevel {
				continue
			}
			apples := 1 + int(o*float64(cfg.MaxApples))
			if apples > cfg.MaxApples {
				apples = cfg.MaxApples
			}
			layout.Trees = append(layout.Trees, world.TreePlacement{X: x, Y: y, Apples: apples})
		}
	}

	layout.SpawnX, layout.SpawnY = p.pickSpawn(layout)
	return layout, nil
}

func (p Provider) inBorder(x, y int) bool {
	m := p.cfg.BorderMargin
	return x < m || y < m || x >= p.cfg.Width-m || y >= p.cfg.Height-m
}

// carveCenterField guarantees a workable farm when the noise threshold
// leaves the whole map barren.
func (p Provider) carveCenterField(layout *world.Layout) int {
	cx, cy := p.cfg.Width/2, p.cfg.Height/2
	count := 0
	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			if x < 0 || x >= p.cfg.Width || y < 0 || y >= p.cfg.Height || p.inBorder(x, y) {
				continue
			}
			layout.Farmable[y*p.cfg.Width+x] = true
			count++
		}
	}
	return count
}

// pickSpawn prefers the farmable tile closest to the map center.
func (p Provider) pickSpawn(layout world.Layout) (int, int) {
	if p.cfg.SpawnX >= 0 && p.cfg.SpawnY >= 0 && p.cfg.SpawnX < p.cfg.Width && p.cfg.SpawnY < p.cfg.Height {
		return p.cfg.SpawnX, p.cfg.SpawnY
	}
	cx, cy := p.cfg.Width/2, p.cfg.Height/2
	bestX, bestY := cx, cy
	bestDist := math.MaxFloat64
	for y := 0; y < p.cfg.Height; y++ {
		for x := 0; x < p.cfg.Width; x++ {
			if !layout.FarmableAt(x, y) {
				continue
			}
			d := math.Hypot(float64(x-cx), float64(y-cy))
			if d < bestDist {
				bestDist = d
				bestX, bestY = x, y
			}
		}
	}
	return bestX, bestY
}

// octaveNoise layers multiple noise frequencies into one [0,1] sample.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
