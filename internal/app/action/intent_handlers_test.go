package action

import (
	"context"
	"errors"
	"testing"

	"farmverse/internal/app/ports"
	"farmverse/internal/app/session"
	"farmverse/internal/domain/farm"
)

func TestUseIntent_TillsFacingTile(t *testing.T) {
	f := newEngineFixture(t)

	resp := f.execute(t, "k-use", Intent{Type: IntentUse})
	if !resp.Applied {
		t.Fatalf("use = %+v, want applied", resp)
	}
	if !resp.State.Busy {
		t.Error("state should report a running countdown")
	}

	busy := f.execute(t, "k-use-2", Intent{Type: IntentUse})
	if busy.Applied {
		t.Error("second use should reject while the tool is mid-swing")
	}

	f.stepSeconds(t, 0.4)

	f.runner.Do(func(s *session.Session) {
		if !s.Farm().Soil.TileAt(4, 5).Has(farm.TileTilled) {
			t.Error("facing tile not tilled after countdown")
		}
		if s.Busy() {
			t.Error("actuator still busy after commit")
		}
	})
}

func TestMoveIntent_DirectionMovesAndStops(t *testing.T) {
	f := newEngineFixture(t)

	f.execute(t, "k-up", Intent{Type: IntentMove, Direction: "up"})
	f.stepSeconds(t, 0.25)

	var afterMove float64
	f.runner.Do(func(s *session.Session) {
		afterMove = s.Farm().Player.Pos.Y
		if s.Farm().Player.Status != "up" {
			t.Errorf("status = %q, want up while moving", s.Farm().Player.Status)
		}
	})
	if afterMove >= 216 {
		t.Fatalf("player y = %v, want above spawn 216", afterMove)
	}

	f.execute(t, "k-stop", Intent{Type: IntentMove})
	f.stepSeconds(t, 0.1)

	f.runner.Do(func(s *session.Session) {
		if s.Farm().Player.Pos.Y != afterMove {
			t.Errorf("player y = %v, want parked at %v", s.Farm().Player.Pos.Y, afterMove)
		}
		if s.Farm().Player.Status != "up_idle" {
			t.Errorf("status = %q, want up_idle", s.Farm().Player.Status)
		}
	})
}

func TestSelectSlotIntent_ThrottledSwitch(t *testing.T) {
	f := newEngineFixture(t)

	if resp := f.execute(t, "k-s1", Intent{Type: IntentSelectSlot, Slot: 2}); !resp.Applied {
		t.Fatalf("first switch = %+v, want applied", resp)
	}
	if resp := f.execute(t, "k-s2", Intent{Type: IntentSelectSlot, Slot: 3}); resp.Applied {
		t.Fatal("immediate second switch should reject")
	}

	f.stepSeconds(t, 0.25)

	resp := f.execute(t, "k-s3", Intent{Type: IntentSelectSlot, Slot: 3})
	if !resp.Applied || resp.State.SelectedID != farm.ToolAxe {
		t.Fatalf("switch after cooldown = %+v, want axe selected", resp)
	}
}

func TestAssignSlotIntent_RewiresHotbar(t *testing.T) {
	f := newEngineFixture(t)

	resp := f.execute(t, "k-a1", Intent{Type: IntentAssignSlot, Slot: 5, ItemID: "tomato_seed"})
	if !resp.Applied {
		t.Fatalf("assign = %+v, want applied", resp)
	}
	if resp.State.Hotbar[4] != "tomato_seed" {
		t.Errorf("hotbar slot 5 = %q, want tomato_seed", resp.State.Hotbar[4])
	}

	bad := f.execute(t, "k-a2", Intent{Type: IntentAssignSlot, Slot: 5, ItemID: "corn"})
	if bad.Applied {
		t.Error("produce must not be assignable to the hotbar")
	}
}

func TestBuyIntent_ChecksCatalogAndWallet(t *testing.T) {
	f := newEngineFixture(t)

	resp := f.execute(t, "k-b1", Intent{Type: IntentBuy, ItemID: "tomato_seed", Count: 3})
	if !resp.Applied {
		t.Fatalf("buy = %+v, want applied", resp)
	}
	if resp.State.Money != farm.StartingMoney-21 {
		t.Errorf("money = %d, want %d", resp.State.Money, farm.StartingMoney-21)
	}
	if resp.State.Seeds["tomato_seed"] != farm.StartingSeedCount+3 {
		t.Errorf("tomato seeds = %d, want %d", resp.State.Seeds["tomato_seed"], farm.StartingSeedCount+3)
	}

	if bad := f.execute(t, "k-b2", Intent{Type: IntentBuy, ItemID: "corn"}); bad.Applied {
		t.Error("produce is not purchasable")
	}
	if broke := f.execute(t, "k-b3", Intent{Type: IntentBuy, ItemID: "corn_seed", Count: 1000}); broke.Applied {
		t.Error("purchase beyond the wallet should reject")
	}
}

func TestSellIntent_ClampsToStock(t *testing.T) {
	f := newEngineFixture(t)

	if resp := f.execute(t, "k-e1", Intent{Type: IntentSell, ItemID: "apple"}); resp.Applied {
		t.Fatal("selling without stock should reject")
	}

	f.runner.Do(func(s *session.Session) {
		s.Farm().Player.Items.Add("apple", 3)
	})

	resp := f.execute(t, "k-e2", Intent{Type: IntentSell, ItemID: "apple", Count: 5})
	if !resp.Applied {
		t.Fatalf("sell = %+v, want applied", resp)
	}
	if resp.State.Money != farm.StartingMoney+6 {
		t.Errorf("money = %d, want %d", resp.State.Money, farm.StartingMoney+6)
	}
	if resp.State.Inventory["apple"] != 0 {
		t.Errorf("apples left = %d, want 0", resp.State.Inventory["apple"])
	}
	if resp.Message != "sold 3 apple for 6" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestSaveLoadIntents_RoundTrip(t *testing.T) {
	f := newEngineFixture(t)

	f.execute(t, "k-till", Intent{Type: IntentUse})
	f.stepSeconds(t, 0.4)

	save := f.execute(t, "k-save", Intent{Type: IntentSave, Slot: 2})
	if !save.Applied || save.Message != "saved slot 2" {
		t.Fatalf("save = %+v, want applied to slot 2", save)
	}
	if _, ok := f.saves.saves[2]; !ok {
		t.Fatal("slot 2 missing from store")
	}

	f.runner.Do(func(s *session.Session) {
		if !s.Farm().Soil.Till(1, 1) {
			t.Fatal("till (1,1) failed")
		}
	})

	load := f.execute(t, "k-load", Intent{Type: IntentLoad, Slot: 2})
	if !load.Applied || load.Message != "loaded slot 2" {
		t.Fatalf("load = %+v, want applied from slot 2", load)
	}

	f.runner.Do(func(s *session.Session) {
		if s.Farm().Soil.TileAt(1, 1).Has(farm.TileTilled) {
			t.Error("tile tilled after save should be reverted by load")
		}
		if !s.Farm().Soil.TileAt(4, 5).Has(farm.TileTilled) {
			t.Error("tile tilled before save should survive load")
		}
	})
}

func TestDeleteSlotIntent_RemovesSaveOrRejects(t *testing.T) {
	f := newEngineFixture(t)

	if resp := f.execute(t, "k-d1", Intent{Type: IntentDeleteSlot, Slot: 3}); resp.Applied {
		t.Fatal("deleting an empty slot should reject")
	}

	save := f.execute(t, "k-d2", Intent{Type: IntentSave, Slot: 3})
	if !save.Applied {
		t.Fatalf("save = %+v, want applied", save)
	}

	resp := f.execute(t, "k-d3", Intent{Type: IntentDeleteSlot, Slot: 3})
	if !resp.Applied || resp.Message != "deleted slot 3" {
		t.Fatalf("delete = %+v, want applied", resp)
	}
	if _, ok := f.saves.saves[3]; ok {
		t.Error("slot 3 still in store after delete")
	}
}

func TestLoadIntent_MissingSlotSurfacesLoadError(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.uc.Execute(context.Background(), Request{
		AgentID:        "farmer_test",
		IdempotencyKey: "k-miss",
		Intent:         Intent{Type: IntentLoad, Slot: 7},
	})
	if err == nil {
		t.Fatal("expected load failure")
	}
	var loadErr *ports.LoadError
	if !errors.As(err, &loadErr) || loadErr.Slot != 7 {
		t.Errorf("err = %v, want LoadError for slot 7", err)
	}
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("err = %v, want to unwrap to not found", err)
	}
	if f.metrics.failures != 1 {
		t.Errorf("failures = %d, want 1", f.metrics.failures)
	}
}
