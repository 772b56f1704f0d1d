package domain

// A Wishlist maps product keys to product snapshots. Presence is
// binary, there are no quantities. Construct with NewWishlist.
type Wishlist struct {
	items map[string]Product
	order []string
}

func NewWishlist() Wishlist {
	return Wishlist{items: make(map[string]Product)}
}

func (w *Wishlist) Has(key string) bool {
	_, ok := w.items[key]
	return ok
}

// Add inserts the snapshot, reporting whether it was absent before.
func (w *Wishlist) Add(p Product) bool {
	key := p.Key()
	if _, ok := w.items[key]; ok {
		return false
	}
	w.items[key] = p
	w.order = append(w.order, key)
	return true
}

// Remove deletes the snapshot, reporting whether it existed.
func (w *Wishlist) Remove(key string) bool {
	if _, ok := w.items[key]; !ok {
		return false
	}
	delete(w.items, key)
	for i, k := range w.order {
		if k == key {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Product returns the stored snapshot for key if present.
func (w *Wishlist) Product(key string) (Product, bool) {
	p, ok := w.items[key]
	return p, ok
}

// Products returns snapshots in insertion order.
func (w *Wishlist) Products() []Product {
	ps := make([]Product, 0, len(w.order))
	for _, k := range w.order {
		ps = append(ps, w.items[k])
	}
	return ps
}

// Count is the wishlist badge value.
func (w *Wishlist) Count() int {
	return len(w.items)
}
