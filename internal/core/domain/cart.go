package domain

import "errors"

var ErrEmptyCart = errors.New("cart is empty")

// A CartEntry couples a product snapshot with a quantity.
// Quantity is never below 1 while the entry exists.
type CartEntry struct {
	Product  Product
	Quantity int
}

// A Cart maps product keys to entries and remembers first-add order
// for display. The zero value is not usable, construct with NewCart.
type Cart struct {
	entries map[string]CartEntry
	order   []string
}

func NewCart() Cart {
	return Cart{entries: make(map[string]CartEntry)}
}

// Add merges qty into an existing entry or inserts a new one.
// Non-positive qty inserts are treated as 1.
func (c *Cart) Add(p Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	key := p.Key()
	if e, ok := c.entries[key]; ok {
		e.Quantity += qty
		c.entries[key] = e
		return
	}
	c.entries[key] = CartEntry{Product: p, Quantity: qty}
	c.order = append(c.order, key)
}

// SetQuantity sets the entry quantity clamped to a minimum of 1.
// Decrementing a quantity-1 entry leaves it at 1: removal is only
// possible through Remove. Returns false when no entry exists.
func (c *Cart) SetQuantity(key string, qty int) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	e.Quantity = max(1, qty)
	c.entries[key] = e
	return true
}

// Remove deletes the entry, reporting whether it existed.
func (c *Cart) Remove(key string) bool {
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *Cart) Clear() {
	c.entries = make(map[string]CartEntry)
	c.order = nil
}

// Entry returns the entry for key if present.
func (c *Cart) Entry(key string) (CartEntry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Entries returns entries in first-add order.
func (c *Cart) Entries() []CartEntry {
	es := make([]CartEntry, 0, len(c.order))
	for _, k := range c.order {
		es = append(es, c.entries[k])
	}
	return es
}

// Total sums price times quantity over all entries. It is recomputed
// on every call, nothing is cached.
func (c *Cart) Total() float64 {
	var t float64
	for _, e := range c.entries {
		t += e.Product.Price * float64(e.Quantity)
	}
	return t
}

// Count sums quantities over all entries, the cart badge value.
func (c *Cart) Count() int {
	var n int
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	return len(c.entries)
}
