// Package inventory implements the ordered item-slot inventory shared by
// every creature's body.
package inventory

import "github.com/tile-ward/gridworld/item"

// Inventory is an ordered list of (Item, count) entries. The zero value is
// an empty inventory ready to use.
type Inventory struct {
	entries []item.Stack
}

// New constructs an empty Inventory.
func New() *Inventory {
	return &Inventory{}
}

// Len returns the number of occupied slots.
func (inv *Inventory) Len() int {
	return len(inv.entries)
}

// GetItem returns the Item held in slot idx. idx must be in [0, Len()).
func (inv *Inventory) GetItem(idx int) item.Item {
	return inv.entries[idx].Item
}

// Slots returns a read-only snapshot of the inventory's entries, in order.
func (inv *Inventory) Slots() []item.Stack {
	out := make([]item.Stack, len(inv.entries))
	copy(out, inv.entries)
	return out
}

// Add merges n of it into an existing entry carrying it, or appends a new
// slot if none exists. Add is a no-op for n <= 0.
func (inv *Inventory) Add(it item.Item, n int) {
	if n <= 0 {
		return
	}
	for i := range inv.entries {
		if inv.entries[i].Item == it {
			inv.entries[i].Count += n
			return
		}
	}
	inv.entries = append(inv.entries, item.Stack{Item: it, Count: n})
}

// MoveItem takes the slot at from out of the list and reinserts it at index
// to, shifting the slots in between; the result is a permutation of the
// slots. Both indices must be in [0, Len()); out-of-range indices are a
// silent no-op, matching the engine's "malformed input is a no-op" error
// disposition for client-originated controls.
func (inv *Inventory) MoveItem(from, to int) {
	if from < 0 || to < 0 || from >= len(inv.entries) || to >= len(inv.entries) || from == to {
		return
	}
	moved := inv.entries[from]
	rest := append(inv.entries[:from], inv.entries[from+1:]...)
	inv.entries = append(rest[:to], append([]item.Stack{moved}, rest[to:]...)...)
}

// Pay attempts to atomically deduct cost from the inventory. It returns true
// and mutates the inventory only if every item in cost is available in
// sufficient quantity; otherwise it returns false and leaves the inventory
// untouched.
func (inv *Inventory) Pay(cost item.Cost) bool {
	if len(cost) == 0 {
		return true
	}
	have := make(map[item.Item]int, len(cost))
	for it, need := range cost {
		if need <= 0 {
			continue
		}
		for _, e := range inv.entries {
			if e.Item == it {
				have[it] = e.Count
				break
			}
		}
		if have[it] < need {
			return false
		}
	}
	for it, need := range cost {
		if need <= 0 {
			continue
		}
		for i := range inv.entries {
			if inv.entries[i].Item == it {
				inv.entries[i].Count -= need
				break
			}
		}
	}
	inv.compact()
	return true
}

// compact removes any slot whose count has fallen to zero or below,
// preserving the invariant that every remaining entry has a positive count.
func (inv *Inventory) compact() {
	out := inv.entries[:0]
	for _, e := range inv.entries {
		if e.Count > 0 {
			out = append(out, e)
		}
	}
	inv.entries = out
}

// View is the wire-level representation of an Inventory sent to clients.
type View struct {
	Slots []item.Stack `json:"slots"`
}

// ViewOf builds the outbound View of inv.
func ViewOf(inv *Inventory) View {
	return View{Slots: inv.Slots()}
}

// Clone returns a deep copy of inv, used when snapshotting a PlayerSave.
func (inv *Inventory) Clone() *Inventory {
	c := &Inventory{entries: make([]item.Stack, len(inv.entries))}
	copy(c.entries, inv.entries)
	return c
}
