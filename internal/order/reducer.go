package order

import (
	"github.com/antojopicante/pedidos/internal/catalog"
)

// Op is a state transition on the item list. The set of operations is closed:
// toggle, update, set quantity.
type Op interface {
	isOp()
}

// ToggleOp removes the item for the product when present (regardless of its
// quantity), or appends a fresh default item when absent.
type ToggleOp struct {
	Product *catalog.Product
}

// UpdateOp merges a partial configuration into the item for ProductID.
// It is a no-op when no such item exists.
type UpdateOp struct {
	ProductID string
	Patch     Patch
}

// SetQtyOp sets the item's quantity; anything below one removes the item.
type SetQtyOp struct {
	ProductID string
	Qty       int
}

func (ToggleOp) isOp() {}
func (UpdateOp) isOp() {}
func (SetQtyOp) isOp() {}

// Patch is a partial item configuration. Nil fields are absent from the
// patch; non-nil fields replace the item's value wholesale (last write wins).
type Patch struct {
	Version    *catalog.Version
	Size       *catalog.Size
	ToppingIDs []string
	ExtrasQty  map[string]int
}

// Apply is the reducer: given the current item list and one operation it
// returns the next list. It is total (no operation fails) and never mutates
// its input, so callers holding an older state keep a consistent view.
// Item order is insertion order; removals do not reorder survivors.
func Apply(state []Item, op Op) []Item {
	switch op := op.(type) {
	case ToggleOp:
		return applyToggle(state, op)
	case UpdateOp:
		return applyUpdate(state, op)
	case SetQtyOp:
		return applySetQty(state, op)
	default:
		return state
	}
}

func applyToggle(state []Item, op ToggleOp) []Item {
	if op.Product == nil {
		return state
	}
	for i, it := range state {
		if it.Product.ID == op.Product.ID {
			next := make([]Item, 0, len(state)-1)
			next = append(next, state[:i]...)
			next = append(next, state[i+1:]...)
			return next
		}
	}
	next := make([]Item, 0, len(state)+1)
	next = append(next, state...)
	return append(next, newItem(op.Product))
}

func applyUpdate(state []Item, op UpdateOp) []Item {
	idx := indexOf(state, op.ProductID)
	if idx < 0 {
		return state
	}

	next := append([]Item(nil), state...)
	it := next[idx].clone()

	if op.Patch.Version != nil {
		it.Version = *op.Patch.Version
	}
	if op.Patch.Size != nil {
		it.Size = *op.Patch.Size
	}
	if op.Patch.ToppingIDs != nil {
		it.ToppingIDs = clampToppings(op.Patch.ToppingIDs, it.Product.MaxToppings())
	}
	if op.Patch.ExtrasQty != nil {
		it.ExtrasQty = normalizeExtras(op.Patch.ExtrasQty)
	}

	next[idx] = it
	return next
}

func applySetQty(state []Item, op SetQtyOp) []Item {
	idx := indexOf(state, op.ProductID)
	if idx < 0 {
		return state
	}

	if op.Qty < 1 {
		next := make([]Item, 0, len(state)-1)
		next = append(next, state[:idx]...)
		next = append(next, state[idx+1:]...)
		return next
	}

	next := append([]Item(nil), state...)
	it := next[idx].clone()
	it.Qty = op.Qty
	next[idx] = it
	return next
}

func indexOf(state []Item, productID string) int {
	for i, it := range state {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

// clampToppings copies at most max topping ids. Selections past the cap are
// dropped silently instead of failing the operation.
func clampToppings(ids []string, max int) []string {
	if max < 0 {
		max = 0
	}
	if len(ids) > max {
		ids = ids[:max]
	}
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}

// normalizeExtras copies only positive quantities; zero or negative entries
// are semantically absent.
func normalizeExtras(quantities map[string]int) map[string]int {
	out := make(map[string]int, len(quantities))
	for id, qty := range quantities {
		if qty > 0 {
			out[id] = qty
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
