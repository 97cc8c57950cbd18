package farm

func testCatalog() Catalog {
	return Catalog{
		Tools: []string{ToolHoe, ToolWater, ToolAxe, ToolHarvest},
		Crops: []CropDef{
			{Type: "corn", Seed: "corn_seed", Produce: "corn", Stages: 4, BuyPrice: 5, SellPrice: 10},
			{Type: "tomato", Seed: "tomato_seed", Produce: "tomato", Stages: 3, BuyPrice: 7, SellPrice: 20},
		},
		Materials: []MaterialDef{
			{ID: "wood", SellPrice: 4},
			{ID: "apple", SellPrice: 2},
		},
	}
}

func newTestGrid(w, h int) *SoilGrid {
	return NewSoilGrid(SoilConfig{
		Width:    w,
		Height:   h,
		TileSize: TileSize,
		MaxStage: testCatalog().MaxStageFor,
	})
}

func newTestFarm(w, h int) *Farm {
	return New(Config{Width: w, Height: h, TileSize: TileSize, Catalog: testCatalog()})
}
