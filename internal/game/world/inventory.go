package world

// Inventory holds the items the player carries, in the order they were
// picked up.
type Inventory struct {
	items []*Item
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add moves it into the inventory, taking it from any previous container.
//
// Postcondition: it.Carried() is true and it appears last in Items().
func (inv *Inventory) Add(it *Item) {
	it.detach()
	inv.items = append(inv.items, it)
	it.owner = inv
}

// Remove takes it out of the inventory.
//
// Postcondition: Returns true if it was carried; it is then owned by no container.
func (inv *Inventory) Remove(it *Item) bool {
	if it.owner != inv {
		return false
	}
	it.detach()
	return true
}

func (inv *Inventory) removeItem(it *Item) bool {
	var ok bool
	inv.items, ok = removeFrom(inv.items, it)
	return ok
}

// Contains reports whether it is carried in this inventory.
func (inv *Inventory) Contains(it *Item) bool {
	return it.owner == inv
}

// Items returns a snapshot of the carried items.
func (inv *Inventory) Items() []*Item {
	return append([]*Item(nil), inv.items...)
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int { return len(inv.items) }

// Empty reports whether nothing is carried.
func (inv *Inventory) Empty() bool { return len(inv.items) == 0 }
