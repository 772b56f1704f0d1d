package domain

import "strconv"

// A Product is a read-only catalog record sourced from the external API.
// Cart and wishlist entries embed it by value: later catalog changes do
// not affect entries already stored.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
}

// Key returns the mapping key used by cart and wishlist entries.
func (p Product) Key() string {
	return strconv.FormatInt(p.ID, 10)
}
