package observe

import (
	"farmverse/internal/app/shared/stateview"
	"farmverse/internal/domain/farm"
)

type Request struct {
	AgentID string
}

type Response struct {
	SessionID string                   `json:"session_id"`
	State     stateview.State          `json:"state"`
	View      View                     `json:"view"`
	Tiles     []ObservedTile           `json:"tiles"`
	Crops     []stateview.CropForecast `json:"crops"`
	Trees     []ObservedTree           `json:"trees"`
	Pending   []PendingAction          `json:"pending_actions"`
	Shop      Shop                     `json:"shop"`
	Rules     Rules                    `json:"rules"`
}

// View describes the square tile window the response covers.
type View struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Center farm.Point `json:"center"`
	Radius int        `json:"radius"`
}

type ObservedTile struct {
	Pos      farm.Point `json:"pos"`
	InBounds bool       `json:"in_bounds"`
	Farmable bool       `json:"farmable"`
	Tilled   bool       `json:"tilled"`
	Watered  bool       `json:"watered"`
	Planted  bool       `json:"planted"`
	SoilHint string     `json:"soil_hint,omitempty"`
}

type ObservedTree struct {
	Tile   farm.Point `json:"tile"`
	HP     int        `json:"hp"`
	Apples int        `json:"apples"`
}

type PendingAction struct {
	Class            string     `json:"class"`
	ID               string     `json:"id"`
	Target           farm.Point `json:"target"`
	RemainingSeconds float64    `json:"remaining_seconds"`
}

type ShopItem struct {
	ID        string `json:"id"`
	BuyPrice  int    `json:"buy_price,omitempty"`
	SellPrice int    `json:"sell_price,omitempty"`
}

type Shop struct {
	Seeds     []ShopItem `json:"seeds"`
	Produce   []ShopItem `json:"produce"`
	Materials []ShopItem `json:"materials"`
}

// Rules surfaces the fixed tuning an agent needs to plan: geometry, action
// timings, and the weather odds.
type Rules struct {
	TileSize          int     `json:"tile_size"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	PlayerSpeed       float64 `json:"player_speed"`
	ToolUseSeconds    float64 `json:"tool_use_seconds"`
	SeedUseSeconds    float64 `json:"seed_use_seconds"`
	SlotSwitchSeconds float64 `json:"slot_switch_seconds"`
	RainChance        float64 `json:"rain_chance"`
}
