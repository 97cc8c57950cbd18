package farm

// Gameplay tuning. Values follow the upstream game balance; sizes are in
// pixels and durations in seconds.
const (
	// TileSize is the edge length of one soil tile.
	TileSize = 48

	// DefaultFarmWidth and DefaultFarmHeight size the farm in tiles.
	DefaultFarmWidth  = 20
	DefaultFarmHeight = 13

	// PlayerSpeed is the walk speed in pixels per second. Diagonal movement
	// is scaled by DiagonalFactor so it is not faster than cardinal movement.
	PlayerSpeed    = 120.0
	DiagonalFactor = 0.7071

	// PlayerFootprintW and PlayerFootprintH size the collision and harvest
	// footprint around the player center.
	PlayerFootprintW = 24.0
	PlayerFootprintH = 40.0

	// ToolUseSeconds and SeedUseSeconds gate tool and seed actions.
	ToolUseSeconds = 0.35
	SeedUseSeconds = 0.35

	// SlotSwitchSeconds throttles hotbar slot switching.
	SlotSwitchSeconds = 0.2

	// HotbarSlots is the number of selectable hotbar slots.
	HotbarSlots = 5

	// DefaultMaxStage is the mature stage index for crops the catalog does
	// not describe.
	DefaultMaxStage = 3

	// StartingMoney is the player's opening balance.
	StartingMoney = 200

	// StartingSeedCount seeds the opening seed inventory per crop.
	StartingSeedCount = 5

	// TreeHP is the number of axe hits a tree takes before falling.
	TreeHP = 5
)
