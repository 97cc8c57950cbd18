// Package observe builds the agent-facing view of the farm: a tile window
// around the player plus everything needed to plan the next intents.
package observe

import (
	"context"
	"errors"
	"strings"

	"farmverse/internal/app/ports"
	"farmverse/internal/app/session"
	"farmverse/internal/app/shared/stateview"
	"farmverse/internal/domain/farm"
	"farmverse/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid observe request")

const (
	fixedViewRadius = 5
	fixedViewSize   = fixedViewRadius*2 + 1
)

type UseCase struct {
	Runner *session.Runner
}

func (u UseCase) Execute(_ context.Context, req Request) (Response, error) {
	agentID := strings.TrimSpace(req.AgentID)
	if agentID == "" {
		return Response{}, ErrInvalidRequest
	}

	var (
		out Response
		err error
	)
	u.Runner.Do(func(s *session.Session) {
		if agentID != s.AgentID {
			err = ports.ErrNotFound
			return
		}
		out = project(s)
	})
	return out, err
}

// project assembles the whole response under the runner guard.
func project(s *session.Session) Response {
	f := s.Farm()
	center := farm.TileOf(f.Player.Pos, f.Soil.TileSize())

	return Response{
		SessionID: s.ID,
		State:     stateview.Capture(s),
		View: View{
			Width:  fixedViewSize,
			Height: fixedViewSize,
			Center: center,
			Radius: fixedViewRadius,
		},
		Tiles:   buildWindowTiles(f.Soil, center),
		Crops:   cropsInWindow(f, center),
		Trees:   treesInWindow(f, center),
		Pending: pendingActions(s),
		Shop:    buildShop(f.Catalog),
		Rules: Rules{
			TileSize:          f.Soil.TileSize(),
			Width:             f.Soil.Width(),
			Height:            f.Soil.Height(),
			PlayerSpeed:       farm.PlayerSpeed,
			ToolUseSeconds:    farm.ToolUseSeconds,
			SeedUseSeconds:    farm.SeedUseSeconds,
			SlotSwitchSeconds: farm.SlotSwitchSeconds,
			RainChance:        world.RainChance,
		},
	}
}

func buildWindowTiles(soil *farm.SoilGrid, center farm.Point) []ObservedTile {
	out := make([]ObservedTile, 0, fixedViewSize*fixedViewSize)
	for y := center.Y - fixedViewRadius; y <= center.Y+fixedViewRadius; y++ {
		for x := center.X - fixedViewRadius; x <= center.X+fixedViewRadius; x++ {
			if !soil.InBounds(x, y) {
				out = append(out, ObservedTile{Pos: farm.Point{X: x, Y: y}})
				continue
			}
			flags := soil.TileAt(x, y)
			out = append(out, ObservedTile{
				Pos:      farm.Point{X: x, Y: y},
				InBounds: true,
				Farmable: flags.Has(farm.TileFarmable),
				Tilled:   flags.Has(farm.TileTilled),
				Watered:  flags.Has(farm.TileWatered),
				Planted:  flags.Has(farm.TilePlanted),
				SoilHint: soil.HintAt(x, y),
			})
		}
	}
	return out
}

func cropsInWindow(f *farm.Farm, center farm.Point) []stateview.CropForecast {
	out := make([]stateview.CropForecast, 0, 8)
	for _, forecast := range stateview.ForecastCrops(f) {
		if inWindow(forecast.Tile, center) {
			out = append(out, forecast)
		}
	}
	return out
}

func treesInWindow(f *farm.Farm, center farm.Point) []ObservedTree {
	out := make([]ObservedTree, 0, 4)
	for _, tree := range f.Trees {
		if !tree.Alive || !inWindow(tree.Tile, center) {
			continue
		}
		out = append(out, ObservedTree{Tile: tree.Tile, HP: tree.HP, Apples: tree.Apples})
	}
	return out
}

func pendingActions(s *session.Session) []PendingAction {
	pending := s.PendingActions()
	out := make([]PendingAction, 0, len(pending))
	for _, p := range pending {
		out = append(out, PendingAction{
			Class:            string(p.Class),
			ID:               p.ID,
			Target:           p.Target,
			RemainingSeconds: p.Countdown.Remaining,
		})
	}
	return out
}

func buildShop(catalog farm.Catalog) Shop {
	shop := Shop{
		Seeds:     make([]ShopItem, 0, len(catalog.Crops)),
		Produce:   make([]ShopItem, 0, len(catalog.Crops)),
		Materials: make([]ShopItem, 0, len(catalog.Materials)),
	}
	for _, crop := range catalog.Crops {
		shop.Seeds = append(shop.Seeds, ShopItem{ID: crop.Seed, BuyPrice: crop.BuyPrice})
		shop.Produce = append(shop.Produce, ShopItem{ID: crop.Produce, SellPrice: crop.SellPrice})
	}
	for _, material := range catalog.Materials {
		shop.Materials = append(shop.Materials, ShopItem{ID: material.ID, SellPrice: material.SellPrice})
	}
	return shop
}

func inWindow(tile, center farm.Point) bool {
	return abs(tile.X-center.X) <= fixedViewRadius && abs(tile.Y-center.Y) <= fixedViewRadius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
