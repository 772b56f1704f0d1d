package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/debounce"
)

var _ port.CatalogViewer = (*CatalogService)(nil)

// A CatalogService owns the product list, the filter state and the
// derived filtered view.
type CatalogService struct {
	mu         sync.Mutex
	provider   port.CatalogProvider
	notifier   port.Notifier
	deb        *debounce.Debouncer
	products   []domain.Product
	categories []string
	state      domain.FilterState
	view       []domain.Product
	onRefresh  func()
}

func NewCatalogService(
	provider port.CatalogProvider,
	notifier port.Notifier,
	debounceWait time.Duration,
) *CatalogService {
	return &CatalogService{
		provider:  provider,
		notifier:  notifier,
		deb:       debounce.New(debounceWait),
		state:     domain.FilterState{Category: domain.CategoryAll, Sort: domain.SortRelevance},
		onRefresh: func() {},
	}
}

// Subscribe registers the view refresh hook invoked after every
// recomputation.
func (s *CatalogService) Subscribe(fn func()) {
	s.onRefresh = fn
}

// Load fetches products and categories concurrently and resolves them
// as a unit: if either fetch fails the whole load fails, state is left
// unchanged and the user gets an error notice. There is no retry.
func (s *CatalogService) Load(ctx context.Context) error {
	const op = "CatalogService.Load"

	var (
		wg   sync.WaitGroup
		ps   []domain.Product
		cats []string
		pErr error
		cErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ps, pErr = s.provider.FetchProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		cats, cErr = s.provider.FetchCategories(ctx)
	}()
	wg.Wait()

	if err := errors.Join(pErr, cErr); err != nil {
		s.notifier.Notify(domain.NoticeError, "Failed to load products — network error")
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.products = ps
	s.categories = append([]string{domain.CategoryAll}, cats...)
	s.recompute()
	s.mu.Unlock()

	s.onRefresh()
	return nil
}

// SetQuery updates the search text after a quiet period: rapid calls
// collapse into a single recomputation, each call resets the timer.
func (s *CatalogService) SetQuery(q string) {
	s.deb.Schedule(func() { s.SetQueryNow(q) })
}

// SetQueryNow applies the search text immediately, used by the
// clear-search path.
func (s *CatalogService) SetQueryNow(q string) {
	s.deb.Cancel()
	s.mu.Lock()
	s.state.Query = q
	s.recompute()
	s.mu.Unlock()
	s.onRefresh()
}

func (s *CatalogService) SetCategory(c string) {
	s.mu.Lock()
	s.state.Category = c
	s.recompute()
	s.mu.Unlock()
	s.onRefresh()
}

func (s *CatalogService) SetSort(m domain.SortMode) {
	s.mu.Lock()
	s.state.Sort = m
	s.recompute()
	s.mu.Unlock()
	s.onRefresh()
}

// View returns the current filtered, sorted product view.
func (s *CatalogService) View() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.view)
}

// Categories returns the selector values, the "all" sentinel first.
func (s *CatalogService) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// State returns the current filter criteria.
func (s *CatalogService) State() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FindProduct resolves a product key against the full catalog.
func (s *CatalogService) FindProduct(key string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Key() == key {
			return p, true
		}
	}
	return domain.Product{}, false
}

// caller must hold s.mu
func (s *CatalogService) recompute() {
	s.view = s.state.Apply(s.products)
}
