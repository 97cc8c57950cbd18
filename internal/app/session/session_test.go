package session

import (
	"context"
	"testing"

	"farmverse/internal/domain/farm"
)

func TestUse_HoeTillsTileInFrontAfterCountdown(t *testing.T) {
	fx := newFixture()
	s := fx.session
	ctx := context.Background()

	target := s.farm.Player.TargetTile()
	if !s.Use(ctx) {
		t.Fatalf("expected hoe use to start")
	}
	if !s.Busy() {
		t.Fatalf("expected countdown running")
	}
	if s.farm.Soil.TileAt(target.X, target.Y).Has(farm.TileTilled) {
		t.Fatalf("expected no till before countdown finishes")
	}

	stepSeconds(s, farm.ToolUseSeconds, 0.05)
	if !s.farm.Soil.TileAt(target.X, target.Y).Has(farm.TileTilled) {
		t.Fatalf("expected target tilled after countdown")
	}
	if s.Busy() {
		t.Fatalf("expected actuator idle after commit")
	}

	committed := fx.journal.byType(farm.EventActionCommitted)
	if len(committed) != 1 {
		t.Fatalf("expected one committed event, got %d", len(committed))
	}
	if committed[0].Payload["applied"] != true {
		t.Fatalf("expected applied=true payload, got %v", committed[0].Payload)
	}
}

func TestUse_RejectsSecondToolWhileBusy(t *testing.T) {
	fx := newFixture()
	s := fx.session
	ctx := context.Background()

	if !s.Use(ctx) {
		t.Fatalf("expected first use to start")
	}
	if s.Use(ctx) {
		t.Fatalf("expected second use rejected while busy")
	}
}

func TestMovementLockedDuringAction(t *testing.T) {
	fx := newFixture()
	s := fx.session
	ctx := context.Background()

	start := s.farm.Player.Pos
	s.Move(1, 0)
	s.Use(ctx)
	_ = s.Step(ctx, 0.05)
	if s.farm.Player.Pos != start {
		t.Fatalf("expected no movement while action pending, moved to %v", s.farm.Player.Pos)
	}

	stepSeconds(s, farm.ToolUseSeconds, 0.05)
	_ = s.Step(ctx, 0.05)
	if s.farm.Player.Pos == start {
		t.Fatalf("expected movement to resume after commit")
	}
}

func TestSelectSlot_CooldownAndClassification(t *testing.T) {
	fx := newFixture()
	s := fx.session

	if s.SelectSlot(0) || s.SelectSlot(6) {
		t.Fatalf("expected out-of-range slots rejected")
	}
	if !s.SelectSlot(5) {
		t.Fatalf("expected slot 5 selected")
	}
	if s.farm.Player.SelectedID() != "corn_seed" {
		t.Fatalf("expected corn_seed in slot 5, got %q", s.farm.Player.SelectedID())
	}
	if s.SelectSlot(1) {
		t.Fatalf("expected switch rejected during cooldown")
	}
	stepSeconds(s, farm.SlotSwitchSeconds, 0.05)
	if !s.SelectSlot(1) {
		t.Fatalf("expected switch after cooldown")
	}
}

func TestAssignSlot_AllowsKnownIdsOnly(t *testing.T) {
	fx := newFixture()
	s := fx.session

	if s.AssignSlot(5, "jetpack") {
		t.Fatalf("expected unknown id rejected")
	}
	if !s.AssignSlot(5, "tomato_seed") {
		t.Fatalf("expected seed assignment")
	}
	if s.farm.Player.Hotbar[4] != "tomato_seed" {
		t.Fatalf("expected tomato_seed in slot 5, got %q", s.farm.Player.Hotbar[4])
	}
}

func TestUse_SeedPlantsAndDecrementsOnSuccess(t *testing.T) {
	fx := newFixture()
	s := fx.session
	ctx := context.Background()

	target := s.farm.Player.TargetTile()
	s.farm.Soil.Till(target.X, target.Y)

	s.AssignSlot(5, "tomato_seed")
	stepSeconds(s, farm.SlotSwitchSeconds, 0.05)
	s.SelectSlot(5)

	before := s.farm.Player.Seeds.Count("tomato_seed")
	if !s.Use(ctx) {
		t.Fatalf("expected seed use to start")
	}
	stepSeconds(s, farm.SeedUseSeconds, 0.05)

	crop, ok := s.farm.Soil.CropAt(target.X, target.Y)
	if !ok || crop.Type != "tomato" {
		t.Fatalf("expected tomato planted, got %+v ok=%v", crop, ok)
	}
	if got := s.farm.Player.Seeds.Count("tomato_seed"); got != before-1 {
		t.Fatalf("expected seed count %d, got %d", before-1, got)
	}
}

func TestUse_SeedRejectedWithoutStock(t *testing.T) {
	fx := newFixture()
	s := fx.session
	ctx := context.Background()

	s.farm.Player.Seeds = farm.Inventory{}
	stepSeconds(s, farm.SlotSwitchSeconds, 0.05)
	s.SelectSlot(5)
	if s.Use(ctx) {
		t.Fatalf("expected seed use rejected with empty stock")
	}
}

func TestUse_HarvestIsImmediate(t *testing.T) {
	fx := newFixture()
	s := fx.session
	ctx := context.Background()

	under := farm.TileOf(s.farm.Player.Pos, farm.TileSize)
	s.farm.Soil.Till(under.X, under.Y)
	s.farm.Soil.Plant(under.X, under.Y, "tomato")
	s.farm.Soil.SetRaining(true)
	for i := 0; i < 2; i++ {
		s.farm.Soil.UpdatePlants()
	}
	s.farm.Soil.SetRaining(false)

	stepSeconds(s, farm.SlotSwitchSeconds, 0.05)
	s.SelectSlot(4)
	if s.farm.Player.SelectedID() != farm.ToolHarvest {
		t.Fatalf("expected harvest tool in slot 4, got %q", s.farm.Player.SelectedID())
	}
	if !s.Use(ctx) {
		t.Fatalf("expected immediate harvest")
	}
	if s.Busy() {
		t.Fatalf("expected no countdown for harvest")
	}
	if s.farm.Player.Items.Count("tomato") != 1 {
		t.Fatalf("expected tomato harvested, got %d", s.farm.Player.Items.Count("tomato"))
	}
	if len(fx.journal.byType(farm.EventHarvested)) != 1 {
		t.Fatalf("expected harvested event")
	}
}

func TestBuyAndSellAdjustWalletAndStock(t *testing.T) {
	fx := newFixture()
	s := fx.session
	ctx := context.Background()

	money := s.farm.Player.Money
	if !s.Buy(ctx, "corn_seed", 2) {
		t.Fatalf("expected purchase to succeed")
	}
	if s.farm.Player.Money != money-10 {
		t.Fatalf("expected money %d, got %d", money-10, s.farm.Player.Money)
	}

	s.farm.Player.Items.Add("corn", 3)
	sold, earned := s.Sell(ctx, "corn", 99)
	if sold != 3 || earned != 30 {
		t.Fatalf("expected 3 sold for 30, got %d for %d", sold, earned)
	}
	if s.farm.Player.Money != money-10+30 {
		t.Fatalf("expected money %d, got %d", money-10+30, s.farm.Player.Money)
	}
	if len(fx.journal.byType(farm.EventPurchase)) != 1 || len(fx.journal.byType(farm.EventSale)) != 1 {
		t.Fatalf("expected purchase and sale events")
	}

	s.farm.Player.Money = 0
	if s.Buy(ctx, "corn_seed", 1) {
		t.Fatalf("expected broke purchase rejected")
	}
}
