package farm

// Purchase buys n units of a seed item at the catalog price. The buy fails
// without effect when the item is not purchasable or the player cannot
// afford the full amount. Money never goes negative.
func Purchase(p *Player, catalog Catalog, id string, n int) bool {
	if n <= 0 {
		return false
	}
	price, ok := catalog.BuyPrice(id)
	if !ok {
		return false
	}
	total := price * n
	if p.Money < total {
		return false
	}
	p.Money -= total
	if catalog.IsSeed(id) {
		p.Seeds.Add(id, n)
	} else {
		p.Items.Add(id, n)
	}
	return true
}

// Sell sells up to n units of an item at the catalog price and returns how
// many units sold and the money earned. Selling more than held sells what
// exists; unknown or unsellable items sell zero.
func Sell(p *Player, catalog Catalog, id string, n int) (sold, earned int) {
	price, ok := catalog.SellPrice(id)
	if !ok {
		return 0, 0
	}
	sold = p.Items.Deduct(id, n)
	if sold == 0 {
		return 0, 0
	}
	earned = sold * price
	p.Money += earned
	return sold, earned
}
