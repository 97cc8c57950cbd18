// Package staticcatalog loads the crop, tool, and shop catalog from a YAML
// file and validates it before the farm ever sees it.
package staticcatalog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"farmverse/internal/domain/farm"
)

type fileCatalog struct {
	Tools     []string       `yaml:"tools" validate:"required,min=1,dive,required"`
	Crops     []fileCrop     `yaml:"crops" validate:"required,min=1,dive"`
	Materials []fileMaterial `yaml:"materials" validate:"dive"`
	Hotbar    []string       `yaml:"hotbar" validate:"omitempty,len=5"`
}

type fileCrop struct {
	Type      string `yaml:"type" validate:"required"`
	Seed      string `yaml:"seed" validate:"required"`
	Produce   string `yaml:"produce" validate:"required"`
	Stages    int    `yaml:"stages" validate:"required,min=2"`
	BuyPrice  int    `yaml:"buy_price" validate:"min=0"`
	SellPrice int    `yaml:"sell_price" validate:"min=0"`
}

type fileMaterial struct {
	ID        string `yaml:"id" validate:"required"`
	SellPrice int    `yaml:"sell_price" validate:"min=0"`
}

// Load reads and validates a catalog file.
func Load(path string) (farm.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return farm.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes catalog YAML and validates the result.
func Parse(raw []byte) (farm.Catalog, error) {
	var f fileCatalog
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return farm.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return farm.Catalog{}, fmt.Errorf("validate catalog: %w", err)
	}

	out := farm.Catalog{
		Tools:  append([]string(nil), f.Tools...),
		Hotbar: append([]string(nil), f.Hotbar...),
	}
	for _, c := range f.Crops {
		out.Crops = append(out.Crops, farm.CropDef{
			Type:      c.Type,
			Seed:      c.Seed,
			Produce:   c.Produce,
			Stages:    c.Stages,
			BuyPrice:  c.BuyPrice,
			SellPrice: c.SellPrice,
		})
	}
	for _, m := range f.Materials {
		out.Materials = append(out.Materials, farm.MaterialDef{ID: m.ID, SellPrice: m.SellPrice})
	}
	return out, nil
}

// Default returns the built-in catalog used when no file is configured.
func Default() farm.Catalog {
	return farm.Catalog{
		Tools: []string{farm.ToolHoe, farm.ToolWater, farm.ToolAxe, farm.ToolHarvest},
		Crops: []farm.CropDef{
			{Type: "corn", Seed: "corn_seed", Produce: "corn", Stages: 4, BuyPrice: 5, SellPrice: 10},
			{Type: "tomato", Seed: "tomato_seed", Produce: "tomato", Stages: 3, BuyPrice: 7, SellPrice: 20},
		},
		Materials: []farm.MaterialDef{
			{ID: "wood", SellPrice: 4},
			{ID: "apple", SellPrice: 2},
		},
	}
}
