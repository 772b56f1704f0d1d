package service

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Persisted blob layout. Entries are stored as an ordered array so the
// first-add display order survives a reload. The format is not
// versioned: a breaking change needs a fresh blob key.
type (
	productBlob struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
	}

	cartEntryBlob struct {
		Product productBlob `json:"product"`
		Qty     int         `json:"qty"`
	}
)

func (b productBlob) toDomain() domain.Product {
	return domain.Product{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Category:    b.Category,
		Image:       b.Image,
	}
}

func productToBlob(p domain.Product) productBlob {
	return productBlob{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
	}
}

func cartToBlob(c *domain.Cart) []cartEntryBlob {
	es := c.Entries()
	blob := make([]cartEntryBlob, 0, len(es))
	for _, e := range es {
		blob = append(blob, cartEntryBlob{
			Product: productToBlob(e.Product),
			Qty:     e.Quantity,
		})
	}
	return blob
}

func wishlistToBlob(w *domain.Wishlist) []productBlob {
	ps := w.Products()
	blob := make([]productBlob, 0, len(ps))
	for _, p := range ps {
		blob = append(blob, productToBlob(p))
	}
	return blob
}

// discardEmitter stands in when no analytics broker is configured.
type discardEmitter struct{}

func (discardEmitter) EmitEvent(context.Context, domain.ClientEvent) error {
	return nil
}
