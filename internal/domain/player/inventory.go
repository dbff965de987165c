package player

import "sort"

const DefaultInventorySlots = 50

// Inventory counts items by id. Each distinct item takes one slot.
type Inventory struct {
	items    map[string]int
	maxSlots int
}

func NewInventory(maxSlots int) *Inventory {
	if maxSlots <= 0 {
		maxSlots = DefaultInventorySlots
	}
	return &Inventory{items: map[string]int{}, maxSlots: maxSlots}
}

func (inv *Inventory) MaxSlots() int { return inv.maxSlots }

func (inv *Inventory) Add(id string, qty int) bool {
	if id == "" || qty <= 0 {
		return false
	}
	if _, ok := inv.items[id]; !ok && len(inv.items) >= inv.maxSlots {
		return false
	}
	inv.items[id] += qty
	return true
}

func (inv *Inventory) Remove(id string, qty int) bool {
	if qty <= 0 {
		return false
	}
	have := inv.items[id]
	if have < qty {
		return false
	}
	if have == qty {
		delete(inv.items, id)
	} else {
		inv.items[id] = have - qty
	}
	return true
}

func (inv *Inventory) Has(id string, qty int) bool {
	return inv.items[id] >= qty
}

func (inv *Inventory) Count(id string) int {
	return inv.items[id]
}

type ItemStack struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Items lists stacks sorted by id.
func (inv *Inventory) Items() []ItemStack {
	out := make([]ItemStack, 0, len(inv.items))
	for id, qty := range inv.items {
		out = append(out, ItemStack{ID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type InventoryRecord struct {
	Items    map[string]int `json:"items"`
	MaxSlots int            `json:"maxSlots"`
}

func (inv *Inventory) Record() InventoryRecord {
	items := make(map[string]int, len(inv.items))
	for id, qty := range inv.items {
		items[id] = qty
	}
	return InventoryRecord{Items: items, MaxSlots: inv.maxSlots}
}

func RestoreInventory(rec InventoryRecord) *Inventory {
	inv := NewInventory(rec.MaxSlots)
	for id, qty := range rec.Items {
		if id != "" && qty > 0 {
			inv.items[id] = qty
		}
	}
	return inv
}
