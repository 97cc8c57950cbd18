package session

import (
	"context"

	"farmverse/internal/domain/farm"
)

// SelectSlot selects hotbar slot 1..5. The switch is throttled by the slot
// cooldown; out-of-range slots and throttled switches reject silently.
func (s *Session) SelectSlot(slot int) bool {
	if slot < 1 || slot > farm.HotbarSlots {
		return false
	}
	if !s.actuator.TrySwitch() {
		return false
	}
	s.farm.Player.Selected = slot - 1
	return true
}

// AssignSlot places a known tool or seed id into hotbar slot 1..5.
func (s *Session) AssignSlot(slot int, id string) bool {
	if slot < 1 || slot > farm.HotbarSlots {
		return false
	}
	catalog := s.farm.Catalog
	if !catalog.IsTool(id) && !catalog.IsSeed(id) {
		return false
	}
	player := s.farm.Player
	if len(player.Hotbar) != farm.HotbarSlots {
		hotbar := make([]string, farm.HotbarSlots)
		copy(hotbar, player.Hotbar)
		player.Hotbar = hotbar
	}
	player.Hotbar[slot-1] = id
	return true
}

// Use performs the selected hotbar slot. Tools and seeds arm a countdown
// against the tile in front of the player; the harvest tool applies
// immediately against the player footprint. Every rejection is a silent
// no-op.
func (s *Session) Use(ctx context.Context) bool {
	player := s.farm.Player
	id := player.SelectedID()
	if id == "" {
		return false
	}
	catalog := s.farm.Catalog

	switch {
	case id == farm.ToolHarvest:
		produce, ok := s.farm.Harvest()
		if !ok {
			return false
		}
		_ = s.appendEvents(ctx, s.newEvent(farm.EventHarvested, map[string]any{
			"produce": produce,
			"count":   1,
		}))
		return true

	case catalog.IsTool(id):
		if !s.actuator.StartTool(id, player.TargetTile()) {
			return false
		}
		player.SetActivity(id)
		return true

	case catalog.IsSeed(id):
		if player.Seeds.Count(id) <= 0 {
			return false
		}
		return s.actuator.StartSeed(id, player.TargetTile())
	}
	return false
}

// Move sets the held movement vector consumed by every following Step.
// Components are clamped to [-1, 1]; zeroes stop the player.
func (s *Session) Move(dx, dy float64) {
	s.heldX, s.heldY = dx, dy
}

// EndDay begins the end-of-day transition. It reports false while one is
// already running.
func (s *Session) EndDay() bool { return s.cycle.Begin() }

// Buy purchases n units of a catalog seed. It rejects unaffordable or
// unknown purchases without effect.
func (s *Session) Buy(ctx context.Context, id string, n int) bool {
	if n <= 0 {
		n = 1
	}
	before := s.farm.Player.Money
	if !farm.Purchase(s.farm.Player, s.farm.Catalog, id, n) {
		return false
	}
	_ = s.appendEvents(ctx, s.newEvent(farm.EventPurchase, map[string]any{
		"item":  id,
		"count": n,
		"spent": before - s.farm.Player.Money,
		"money": s.farm.Player.Money,
	}))
	return true
}

// Sell sells up to n units of an item at catalog prices and returns the
// units sold and money earned. Missing stock sells zero.
func (s *Session) Sell(ctx context.Context, id string, n int) (sold, earned int) {
	if n <= 0 {
		n = 1
	}
	sold, earned = farm.Sell(s.farm.Player, s.farm.Catalog, id, n)
	if sold == 0 {
		return 0, 0
	}
	_ = s.appendEvents(ctx, s.newEvent(farm.EventSale, map[string]any{
		"item":   id,
		"count":  sold,
		"earned": earned,
		"money":  s.farm.Player.Money,
	}))
	return sold, earned
}

// SaveTo persists the farm into the given slot and binds the session to it.
func (s *Session) SaveTo(ctx context.Context, slot int) (string, error) {
	if slot <= 0 {
		slot = s.currentSlot
	}
	path, err := s.saves.Save(ctx, slot, s.farm.Snapshot())
	if s.metrics != nil {
		s.metrics.RecordSave(err == nil)
	}
	if err != nil {
		return "", err
	}
	s.currentSlot = slot
	s.recordProgress(ctx)
	_ = s.appendEvents(ctx, s.newEvent(farm.EventSaved, map[string]any{
		"slot": slot,
		"path": path,
		"day":  s.farm.Day,
	}))
	return path, nil
}

// LoadFrom restores the farm from the given slot. Pending actions are
// dropped, the weather resets to dry, and the clock rewinds to dawn. The
// live state is untouched when the load fails.
func (s *Session) LoadFrom(ctx context.Context, slot int) error {
	if slot <= 0 {
		slot = s.defaultSlot
	}
	snapshot, err := s.saves.Load(ctx, slot)
	if s.metrics != nil {
		s.metrics.RecordLoad(err == nil)
	}
	if err != nil {
		return err
	}

	report := s.farm.Restore(snapshot)
	s.actuator.Reset()
	s.farm.Soil.SetRaining(false)
	s.farm.Player.SetIdle()
	s.heldX, s.heldY = 0, 0
	s.clock.Reset()
	s.currentSlot = slot
	s.recordProgress(ctx)
	_ = s.appendEvents(ctx, s.newEvent(farm.EventLoaded, map[string]any{
		"slot":           slot,
		"day":            s.farm.Day,
		"skipped_plants": report.SkippedPlants,
		"relocated":      report.Relocated,
	}))
	return nil
}

// DeleteSlot removes a save slot and its backup.
func (s *Session) DeleteSlot(ctx context.Context, slot int) error {
	return s.saves.Delete(ctx, slot)
}
