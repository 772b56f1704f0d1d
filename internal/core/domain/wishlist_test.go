package domain_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist(t *testing.T) {
	tea := domain.Product{ID: 7, Title: "tea", Price: 3}
	cup := domain.Product{ID: 9, Title: "cup", Price: 5}

	t.Run("AddIsIdempotent", func(t *testing.T) {
		w := domain.NewWishlist()
		assert.True(t, w.Add(tea))
		assert.False(t, w.Add(tea))
		assert.Equal(t, 1, w.Count())
	})

	t.Run("AddThenRemoveReturnsToAbsent", func(t *testing.T) {
		w := domain.NewWishlist()
		w.Add(tea)
		require.True(t, w.Remove("7"))
		assert.False(t, w.Has("7"))
		assert.False(t, w.Remove("7"))
		assert.Zero(t, w.Count())
	})

	t.Run("ProductsKeepInsertionOrder", func(t *testing.T) {
		w := domain.NewWishlist()
		w.Add(cup)
		w.Add(tea)

		ps := w.Products()
		require.Len(t, ps, 2)
		assert.Equal(t, int64(9), ps[0].ID)
		assert.Equal(t, int64(7), ps[1].ID)
	})
}
