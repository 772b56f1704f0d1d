package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	products   []domain.Product
	categories []string
	prodErr    error
	catErr     error
}

func (p fakeProvider) FetchProducts(context.Context) ([]domain.Product, error) {
	return p.products, p.prodErr
}

func (p fakeProvider) FetchCategories(context.Context) ([]string, error) {
	return p.categories, p.catErr
}

func TestCatalogService(t *testing.T) {
	provider := fakeProvider{
		products: []domain.Product{
			{ID: 1, Title: "mug", Price: 10, Category: "a"},
			{ID: 2, Title: "plate", Price: 5, Category: "b"},
		},
		categories: []string{"a", "b"},
	}

	t.Run("LoadPopulatesStateAndRefreshes", func(t *testing.T) {
		notifier := &recordingNotifier{}
		refreshes := &refreshCounter{}
		s := service.NewCatalogService(provider, notifier, time.Millisecond)
		s.Subscribe(refreshes.fn())

		require.NoError(t, s.Load(t.Context()))

		assert.Equal(t, []string{"all", "a", "b"}, s.Categories())
		assert.Len(t, s.View(), 2)
		assert.Equal(t, 1, refreshes.count())
		assert.Empty(t, notifier.all())
	})

	t.Run("LoadFailsAsUnitWithErrorNotice", func(t *testing.T) {
		broken := provider
		broken.catErr = errors.New("boom")
		notifier := &recordingNotifier{}
		s := service.NewCatalogService(broken, notifier, time.Millisecond)

		err := s.Load(t.Context())

		require.Error(t, err)
		assert.Empty(t, s.View())
		assert.Empty(t, s.Categories())
		assert.Equal(t, domain.NoticeError, notifier.lastKind())
	})

	t.Run("CategoryFilterNarrowsView", func(t *testing.T) {
		s := service.NewCatalogService(
			provider, &recordingNotifier{}, time.Millisecond,
		)
		require.NoError(t, s.Load(t.Context()))

		s.SetCategory("b")

		view := s.View()
		require.Len(t, view, 1)
		assert.Equal(t, int64(2), view[0].ID)
	})

	t.Run("SortByPrice", func(t *testing.T) {
		s := service.NewCatalogService(
			provider, &recordingNotifier{}, time.Millisecond,
		)
		require.NoError(t, s.Load(t.Context()))

		s.SetSort(domain.SortPriceAsc)
		view := s.View()
		require.Len(t, view, 2)
		assert.Equal(t, int64(2), view[0].ID)

		s.SetSort(domain.SortPriceDesc)
		view = s.View()
		assert.Equal(t, int64(1), view[0].ID)
	})

	t.Run("SetQueryIsDebounced", func(t *testing.T) {
		refreshes := &refreshCounter{}
		s := service.NewCatalogService(
			provider, &recordingNotifier{}, 20*time.Millisecond,
		)
		require.NoError(t, s.Load(t.Context()))
		s.Subscribe(refreshes.fn())

		s.SetQuery("m")
		s.SetQuery("mu")
		s.SetQuery("mug")

		// nothing applied within the quiet period
		assert.Len(t, s.View(), 2)

		require.Eventually(t, func() bool {
			return len(s.View()) == 1
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, 1, refreshes.count())
	})

	t.Run("SetQueryNowAppliesImmediately", func(t *testing.T) {
		s := service.NewCatalogService(
			provider, &recordingNotifier{}, time.Hour,
		)
		require.NoError(t, s.Load(t.Context()))

		s.SetQuery("stale")
		s.SetQueryNow("")

		assert.Len(t, s.View(), 2)

		// the pending debounced query was canceled
		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, "", s.State().Query)
	})

	t.Run("FindProduct", func(t *testing.T) {
		s := service.NewCatalogService(
			provider, &recordingNotifier{}, time.Millisecond,
		)
		require.NoError(t, s.Load(t.Context()))

		p, ok := s.FindProduct("2")
		require.True(t, ok)
		assert.Equal(t, "plate", p.Title)

		_, ok = s.FindProduct("42")
		assert.False(t, ok)
	})
}
