package farm

// Inventory maps item ids to non-negative counts. Entries may sit at zero;
// callers that want a clean map should use Clone and drop zeros themselves.
type Inventory map[string]int

// Add increases the count for id by n. Zero or negative amounts and empty
// ids are ignored.
func (inv Inventory) Add(id string, n int) {
	if id == "" || n <= 0 {
		return
	}
	inv[id] += n
}

// Consume removes exactly n units of id. It returns false and leaves the
// inventory untouched when fewer than n units are held.
func (inv Inventory) Consume(id string, n int) bool {
	if id == "" || n <= 0 {
		return false
	}
	if inv[id] < n {
		return false
	}
	inv[id] -= n
	return true
}

// Deduct removes up to n units of id and returns how many were actually
// removed. Counts never drop below zero.
func (inv Inventory) Deduct(id string, n int) int {
	if id == "" || n <= 0 {
		return 0
	}
	have := inv[id]
	if have <= 0 {
		return 0
	}
	if n > have {
		n = have
	}
	inv[id] = have - n
	return n
}

// Count returns the held amount for id.
func (inv Inventory) Count(id string) int { return inv[id] }

// Clone returns an independent copy of the inventory.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for id, n := range inv {
		out[id] = n
	}
	return out
}
