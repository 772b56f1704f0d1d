package domain

import "time"

type EventKind string

const (
	EventCartAdd        EventKind = "cart_add"
	EventCartRemove     EventKind = "cart_remove"
	EventCartClear      EventKind = "cart_clear"
	EventWishlistAdd    EventKind = "wishlist_add"
	EventWishlistRemove EventKind = "wishlist_remove"
	EventCheckout       EventKind = "checkout"
)

// A ClientEvent records a storefront interaction for analytics.
type ClientEvent struct {
	Kind       EventKind
	ProductID  string
	Quantity   int
	Total      float64
	OccurredAt time.Time
}
