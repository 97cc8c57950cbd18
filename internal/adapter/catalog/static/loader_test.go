package staticcatalog

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_BuildsCatalog(t *testing.T) {
	raw := []byte(`
tools: [hoe, water]
crops:
  - type: corn
    seed: corn_seed
    produce: corn
    stages: 4
    buy_price: 5
    sell_price: 10
materials:
  - id: wood
    sell_price: 4
hotbar: [hoe, water, hoe, water, corn_seed]
`)
	cat, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cat.IsTool("hoe") || cat.IsTool("axe") {
		t.Fatalf("unexpected tools: %+v", cat.Tools)
	}
	crop, ok := cat.CropBySeed("corn_seed")
	if !ok || crop.MaxStage() != 3 {
		t.Fatalf("unexpected crop: %+v ok=%v", crop, ok)
	}
	if price, ok := cat.SellPrice("wood"); !ok || price != 4 {
		t.Fatalf("unexpected wood price: %d ok=%v", price, ok)
	}
	if got := cat.HotbarOrDefault(); got[4] != "corn_seed" {
		t.Fatalf("unexpected hotbar: %+v", got)
	}
}

func TestParse_RejectsInvalidCatalog(t *testing.T) {
	cases := map[string]string{
		"missing seed": `
tools: [hoe]
crops:
  - type: corn
    produce: corn
    stages: 4
`,
		"single stage": `
tools: [hoe]
crops:
  - type: corn
    seed: corn_seed
    produce: corn
    stages: 1
`,
		"short hotbar": `
tools: [hoe]
crops:
  - type: corn
    seed: corn_seed
    produce: corn
    stages: 3
hotbar: [hoe]
`,
		"no tools": `
tools: []
crops:
  - type: corn
    seed: corn_seed
    produce: corn
    stages: 3
`,
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		} else if !strings.Contains(err.Error(), "catalog") {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
	}
}

func TestLoad_ShippedCatalogFile(t *testing.T) {
	path := filepath.Join("..", "..", "..", "..", "configs", "farmdata.yaml")
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load shipped catalog: %v", err)
	}

	want := Default()
	if len(cat.Crops) != len(want.Crops) || len(cat.Materials) != len(want.Materials) {
		t.Fatalf("shipped catalog drifted from default: %+v", cat)
	}
	for i, crop := range want.Crops {
		if cat.Crops[i] != crop {
			t.Fatalf("crop %d drifted: %+v != %+v", i, cat.Crops[i], crop)
		}
	}
	if got := cat.HotbarOrDefault(); got[0] != "hoe" || got[4] != "corn_seed" {
		t.Fatalf("unexpected shipped hotbar: %+v", got)
	}
}
