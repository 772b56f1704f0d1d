package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// CatalogProvider is the remote catalog API boundary.
type CatalogProvider interface {
	FetchProducts(context.Context) ([]domain.Product, error)
	FetchCategories(context.Context) ([]string, error)
}

// BlobStore is the named-blob persistence boundary. Load reports
// whether v was populated: a missing or undecodable blob yields
// false, never an error, so callers fall back to empty state.
type BlobStore interface {
	Load(ctx context.Context, key string, v any) bool
	Save(ctx context.Context, key string, v any) error
}

// Notifier posts a transient user-facing status message.
type Notifier interface {
	Notify(kind domain.NoticeKind, text string)
}

// EventsEmitter publishes storefront interactions for analytics.
type EventsEmitter interface {
	EmitEvent(context.Context, domain.ClientEvent) error
}

type CatalogViewer interface {
	Load(context.Context) error
	SetQuery(string)
	SetQueryNow(string)
	SetCategory(string)
	SetSort(domain.SortMode)
	View() []domain.Product
	Categories() []string
	State() domain.FilterState
	FindProduct(key string) (domain.Product, bool)
}

type CartOperator interface {
	Add(ctx context.Context, p domain.Product, qty int)
	SetQuantity(ctx context.Context, key string, qty int)
	Remove(ctx context.Context, key string)
	Clear(ctx context.Context)
	Checkout(ctx context.Context) error
	Entries() []domain.CartEntry
	Total() float64
	Count() int
}

// CartAdder is the narrow slice of the cart the wishlist composes
// move-to-cart from.
type CartAdder interface {
	Add(ctx context.Context, p domain.Product, qty int)
}

type WishlistOperator interface {
	Toggle(ctx context.Context, p domain.Product)
	Remove(ctx context.Context, key string)
	MoveToCart(ctx context.Context, key string)
	Products() []domain.Product
	Count() int
}

type NoticeReader interface {
	Active() []domain.Notice
}
