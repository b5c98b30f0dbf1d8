package cart

import "github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"

// MaxQuantity caps a single line item. Attempts to exceed it are
// clamped, not rejected.
const MaxQuantity = 10

// Cart is the in-session list of line items. Lines are keyed by the
// (ProductID, SizeLabel) pair: adding a matching pair merges quantities,
// and RemoveItem/UpdateQuantity address the same pair, so removing one
// size of a perfume never touches the other sizes.
//
// Cart itself is not safe for concurrent use; SessionStore owns the
// locking.
type Cart struct {
	items []domain.CartItem
}

func New() *Cart {
	return &Cart{}
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

func sameLine(a domain.CartItem, productID int64, sizeLabel string) bool {
	return a.ProductID == productID && a.SizeLabel == sizeLabel
}

// AddItem merges the item into an existing line with the same compound
// key, clamping the summed quantity to MaxQuantity, or appends a new
// line. Quantity defaults to 1 when not positive.
func (c *Cart) AddItem(item domain.CartItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.items {
		if sameLine(c.items[i], item.ProductID, item.SizeLabel) {
			c.items[i].Quantity = clampQuantity(c.items[i].Quantity + quantity)
			return
		}
	}
	item.Quantity = clampQuantity(quantity)
	c.items = append(c.items, item)
}

// RemoveItem drops the line matching the compound key, if any.
func (c *Cart) RemoveItem(productID int64, sizeLabel string) {
	for i := range c.items {
		if sameLine(c.items[i], productID, sizeLabel) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity, clamped to MaxQuantity.
// A quantity of zero or less removes the line entirely.
func (c *Cart) UpdateQuantity(productID int64, sizeLabel string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID, sizeLabel)
		return
	}
	for i := range c.items {
		if sameLine(c.items[i], productID, sizeLabel) {
			c.items[i].Quantity = clampQuantity(quantity)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the line items so no caller can mutate the
// cart behind its back.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount is the sum of all quantities, not the number of lines.
// Derived on every call so it can never drift from the items.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of unit price times quantity across all lines.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
