package domain

import "sort"

type CartLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CartState is an ordered cart ledger: at most one line per product id,
// insertion order preserved. All transitions are copy-on-write; callers
// keep snapshots, never shared mutable slices.
type CartState []CartLine

func (c CartState) clone() CartState {
	out := make(CartState, len(c))
	copy(out, c)
	return out
}

func (c CartState) index(productID int) int {
	for i, l := range c {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add increments an existing line or appends a new one with quantity 1.
// Stock is checked at the engine boundary, not here.
func (c CartState) Add(productID int) CartState {
	next := c.clone()
	if i := next.index(productID); i >= 0 {
		next[i].Quantity++
		return next
	}
	return append(next, CartLine{ProductID: productID, Quantity: 1})
}

// Remove deletes the line for productID. Absent lines are a no-op.
func (c CartState) Remove(productID int) CartState {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	next := make(CartState, 0, len(c)-1)
	next = append(next, c[:i]...)
	return append(next, c[i+1:]...)
}

// AdjustQuantity applies a delta, clamping at 1. Deltas never delete a
// line; removal is only ever explicit. Absent lines are a no-op.
func (c CartState) AdjustQuantity(productID, delta int) CartState {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	next := c.clone()
	q := next[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	next[i].Quantity = q
	return next
}

func (c CartState) ItemCount() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

// Subtotal sums discounted unit price times quantity over all lines.
// Lines whose product is missing from the catalog contribute nothing.
func (c CartState) Subtotal(catalog *Catalog) float64 {
	total := 0.0
	for _, l := range c {
		p, err := catalog.Get(l.ProductID)
		if err != nil {
			continue
		}
		total += p.DiscountedUnitPrice() * float64(l.Quantity)
	}
	return total
}

// WishlistState tracks liked product ids. Transitions copy the set so
// observers holding a snapshot never see later toggles.
type WishlistState map[int]struct{}

func (w WishlistState) clone() WishlistState {
	out := make(WishlistState, len(w))
	for id := range w {
		out[id] = struct{}{}
	}
	return out
}

// Toggle flips membership. Two consecutive toggles restore the prior state.
func (w WishlistState) Toggle(productID int) WishlistState {
	next := w.clone()
	if _, ok := next[productID]; ok {
		delete(next, productID)
	} else {
		next[productID] = struct{}{}
	}
	return next
}

func (w WishlistState) Contains(productID int) bool {
	_, ok := w[productID]
	return ok
}

// IDs returns the members sorted ascending, for serialization and display.
func (w WishlistState) IDs() []int {
	out := make([]int, 0, len(w))
	for id := range w {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
