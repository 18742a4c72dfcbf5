// Package cart implements the per-conversation shopping cart: an in-memory
// mapping from catalog id to quantity, never persisted on its own.
package cart

import (
	"math"

	"github.com/dlemos/grocer-mcp/internal/catalog"
	"github.com/dlemos/grocer-mcp/internal/models"
)

// Cart tracks item quantities in insertion order so snapshots and orders
// come out stable. Not safe for concurrent use; the owning session
// serializes access.
type Cart struct {
	order []string
	qty   map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{qty: make(map[string]int)}
}

// Add increments the quantity for itemID and returns the resulting
// quantity. Non-positive qty is clamped to 1, never rejected.
func (c *Cart) Add(itemID string, qty int) int {
	if qty < 1 {
		qty = 1
	}
	if _, ok := c.qty[itemID]; !ok {
		c.order = append(c.order, itemID)
	}
	c.qty[itemID] += qty
	return c.qty[itemID]
}

// Remove deletes the entry for itemID and reports whether it was present.
// Removing an absent item is a no-op.
func (c *Cart) Remove(itemID string) bool {
	if _, ok := c.qty[itemID]; !ok {
		return false
	}
	delete(c.qty, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// SetQty sets the quantity for itemID to exactly qty. A qty of zero or
// less is an intent to remove, not an error.
func (c *Cart) SetQty(itemID string, qty int) {
	if qty <= 0 {
		c.Remove(itemID)
		return
	}
	if _, ok := c.qty[itemID]; !ok {
		c.order = append(c.order, itemID)
	}
	c.qty[itemID] = qty
}

// Qty returns the current quantity for itemID, zero if absent.
func (c *Cart) Qty(itemID string) int {
	return c.qty[itemID]
}

// Empty reports whether the cart has no entries.
func (c *Cart) Empty() bool {
	return len(c.qty) == 0
}

// Len reports the number of distinct items in the cart.
func (c *Cart) Len() int {
	return len(c.qty)
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.order = nil
	c.qty = make(map[string]int)
}

// Snapshot joins the cart against the catalog and returns the presentation
// view. Entries whose id no longer resolves are skipped and contribute
// nothing to the total; stale carts must not break checkout.
func (c *Cart) Snapshot(cat *catalog.Catalog) models.CartView {
	view := models.CartView{Items: []models.CartLine{}}
	var total float64
	for _, id := range c.order {
		item, ok := cat.ByID(id)
		if !ok {
			continue
		}
		qty := c.qty[id]
		subtotal := item.Price * float64(qty)
		view.Items = append(view.Items, models.CartLine{
			ID:       id,
			Name:     item.Name,
			Qty:      qty,
			Price:    item.Price,
			Subtotal: subtotal,
		})
		total += subtotal
	}
	view.Total = round2(total)
	return view
}

// round2 rounds to two decimal places for money presentation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
