package httpadapter

import (
	"encoding/json"
	"testing"
	"time"

	"farmverse/internal/app/action"
	"farmverse/internal/app/observe"
	"farmverse/internal/app/replay"
	"farmverse/internal/app/shared/stateview"
	"farmverse/internal/app/status"
	"farmverse/internal/domain/farm"
)

func TestResponseJSONUsesSnakeCase(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	state := stateview.State{
		Day:          3,
		TimeOfDay:    0.25,
		Phase:        "day",
		Raining:      true,
		Pos:          [2]float64{96, 144},
		Status:       "idle",
		Money:        180,
		SelectedSlot: 1,
		SelectedID:   "hoe",
		Hotbar:       []string{"hoe", "water", "axe", "harvest", "corn_seed"},
		Inventory:    map[string]int{"wood": 2},
		Seeds:        map[string]int{"corn_seed": 4},
		SoilRevision: 7,
	}
	event := farm.DomainEvent{
		Type:       "test_event",
		OccurredAt: now,
		Payload:    map[string]any{"ok": true},
	}

	cases := []struct {
		name    string
		payload any
		want    []string
		notWant []string
	}{
		{
			name: "observe",
			payload: observe.Response{
				SessionID: "farm-1",
				State:     state,
				View:      observe.View{Width: 11, Height: 11, Radius: 5},
			},
			want:    []string{"session_id", "state", "view", "tiles", "pending_actions", "shop", "rules"},
			notWant: []string{"SessionID", "State", "View", "Tiles"},
		},
		{
			name:    "act",
			payload: action.Response{Applied: true, ResultCode: farm.ResultOK, State: state},
			want:    []string{"applied", "result_code", "state"},
			notWant: []string{"Applied", "ResultCode", "State"},
		},
		{
			name:    "status",
			payload: status.Response{SessionID: "farm-1", AgentID: "a1", State: state, CurrentSlot: 1},
			want:    []string{"session_id", "agent_id", "state", "current_slot", "pending_actions", "crops", "tilled_tiles", "slots"},
			notWant: []string{"SessionID", "AgentID", "CurrentSlot"},
		},
		{
			name:    "replay",
			payload: replay.Response{Events: []farm.DomainEvent{event}, Summary: replay.Summary{DaysAdvanced: 1}},
			want:    []string{"events", "summary"},
			notWant: []string{"Events", "Summary"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.payload)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			for _, key := range tc.want {
				if _, ok := got[key]; !ok {
					t.Fatalf("expected key %q in %s", key, string(b))
				}
			}
			for _, key := range tc.notWant {
				if _, ok := got[key]; ok {
					t.Fatalf("unexpected key %q in %s", key, string(b))
				}
			}
			if tc.name == "act" {
				stateMap := asMap(got["state"])
				if _, ok := stateMap["selected_slot"]; !ok {
					t.Fatalf("expected nested snake_case key state.selected_slot in %s", string(b))
				}
				if _, ok := stateMap["SelectedSlot"]; ok {
					t.Fatalf("unexpected nested key state.SelectedSlot in %s", string(b))
				}
				if _, ok := stateMap["seed_inventory"]; !ok {
					t.Fatalf("expected nested snake_case key state.seed_inventory in %s", string(b))
				}
			}
			if tc.name == "replay" {
				summaryMap := asMap(got["summary"])
				if _, ok := summaryMap["days_advanced"]; !ok {
					t.Fatalf("expected nested snake_case key summary.days_advanced in %s", string(b))
				}
				events, _ := got["events"].([]any)
				if len(events) != 1 {
					t.Fatalf("expected one event in %s", string(b))
				}
				evtMap := asMap(events[0])
				if _, ok := evtMap["occurred_at"]; !ok {
					t.Fatalf("expected nested snake_case key events[0].occurred_at in %s", string(b))
				}
			}
		})
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
