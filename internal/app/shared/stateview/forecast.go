package stateview

import (
	"farmverse/internal/domain/farm"
)

// CropForecast is the growth outlook for one planted crop. DaysToMature
// counts the day advances still needed, assuming the crop is watered every
// day; GrowsTonight reports whether the next advance is already secured.
type CropForecast struct {
	Tile         farm.Point `json:"tile"`
	Type         string     `json:"type"`
	Stage        int        `json:"stage"`
	MaxStage     int        `json:"max_stage"`
	Harvestable  bool       `json:"harvestable"`
	GrowsTonight bool       `json:"grows_tonight"`
	DaysToMature int        `json:"days_to_mature"`
}

// ForecastCrops projects every planted crop in planting order.
func ForecastCrops(f *farm.Farm) []CropForecast {
	crops := f.Soil.Crops()
	out := make([]CropForecast, 0, len(crops))
	for _, c := range crops {
		tile := f.Soil.TileAt(c.Tile.X, c.Tile.Y)
		out = append(out, CropForecast{
			Tile:         c.Tile,
			Type:         c.Type,
			Stage:        c.Stage,
			MaxStage:     c.MaxStage,
			Harvestable:  c.Harvestable(),
			GrowsTonight: !c.Harvestable() && (f.Soil.Raining() || tile.Has(farm.TileWatered)),
			DaysToMature: c.MaxStage - c.Stage,
		})
	}
	return out
}
