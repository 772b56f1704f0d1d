package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const CartBlobKey = "cart_v1"

var _ port.CartOperator = (*CartService)(nil)

// A CartService owns the cart mapping. Every mutation persists the
// mapping, refreshes the subscribed view and posts a notice. Persist
// failures are logged, never surfaced: the worst outcome is an
// unsynced next session.
type CartService struct {
	mu        sync.Mutex
	cart      domain.Cart
	blobs     port.BlobStore
	notifier  port.Notifier
	events    port.EventsEmitter
	onRefresh func()
}

func NewCartService(
	ctx context.Context,
	blobs port.BlobStore,
	notifier port.Notifier,
	events port.EventsEmitter,
) *CartService {
	if events == nil {
		events = discardEmitter{}
	}
	s := &CartService{
		cart:      domain.NewCart(),
		blobs:     blobs,
		notifier:  notifier,
		events:    events,
		onRefresh: func() {},
	}
	s.restore(ctx)
	return s
}

func (s *CartService) Subscribe(fn func()) {
	s.onRefresh = fn
}

// Add merges qty into the entry for p, inserting it on first add.
func (s *CartService) Add(ctx context.Context, p domain.Product, qty int) {
	s.mu.Lock()
	s.cart.Add(p, qty)
	s.persist(ctx)
	s.mu.Unlock()

	s.onRefresh()
	s.notifier.Notify(domain.NoticeSuccess, "Product added to cart")
	s.emit(ctx, domain.EventCartAdd, p.Key(), qty)
}

// SetQuantity sets the entry quantity clamped to a minimum of 1.
// A missing key is a silent no-op.
func (s *CartService) SetQuantity(ctx context.Context, key string, qty int) {
	s.mu.Lock()
	ok := s.cart.SetQuantity(key, qty)
	if ok {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if ok {
		s.onRefresh()
	}
}

// Remove deletes the entry for key. A missing key is a silent no-op.
func (s *CartService) Remove(ctx context.Context, key string) {
	s.mu.Lock()
	ok := s.cart.Remove(key)
	if ok {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	s.onRefresh()
	s.notifier.Notify(domain.NoticeSuccess, "Product removed from cart")
	s.emit(ctx, domain.EventCartRemove, key, 0)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart.Clear()
	s.persist(ctx)
	s.mu.Unlock()

	s.onRefresh()
	s.notifier.Notify(domain.NoticeNeutral, "Cart cleared")
	s.emit(ctx, domain.EventCartClear, "", 0)
}

// Checkout places the order. An empty cart aborts with an error
// notice and no state change; otherwise the cart is emptied and a
// checkout event carrying the order total is emitted.
func (s *CartService) Checkout(ctx context.Context) error {
	s.mu.Lock()
	if s.cart.Len() == 0 {
		s.mu.Unlock()
		s.notifier.Notify(domain.NoticeError, "Cart is empty")
		return domain.ErrEmptyCart
	}
	total := s.cart.Total()
	s.cart.Clear()
	s.persist(ctx)
	s.mu.Unlock()

	s.onRefresh()
	s.notifier.Notify(domain.NoticeSuccess, "Order placed")
	s.emitTotal(ctx, domain.EventCheckout, total)
	return nil
}

func (s *CartService) Entries() []domain.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Entries()
}

// Total is recomputed from current entries on every call.
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// caller must hold s.mu
func (s *CartService) persist(ctx context.Context) {
	const op = "CartService.persist"
	blob := cartToBlob(&s.cart)
	if err := s.blobs.Save(ctx, CartBlobKey, blob); err != nil {
		slog.Warn("failed to persist cart", "op", op, "err", err)
	}
}

func (s *CartService) restore(ctx context.Context) {
	var blob []cartEntryBlob
	if !s.blobs.Load(ctx, CartBlobKey, &blob) {
		return
	}
	for _, e := range blob {
		s.cart.Add(e.Product.toDomain(), e.Qty)
	}
}

func (s *CartService) emit(ctx context.Context, kind domain.EventKind, key string, qty int) {
	const op = "CartService.emit"
	ev := domain.ClientEvent{
		Kind:       kind,
		ProductID:  key,
		Quantity:   qty,
		OccurredAt: time.Now(),
	}
	if err := s.events.EmitEvent(ctx, ev); err != nil {
		slog.Warn("failed to emit client event", "op", op, "err", err)
	}
}

func (s *CartService) emitTotal(ctx context.Context, kind domain.EventKind, total float64) {
	const op = "CartService.emitTotal"
	ev := domain.ClientEvent{
		Kind:       kind,
		Total:      total,
		OccurredAt: time.Now(),
	}
	if err := s.events.EmitEvent(ctx, ev); err != nil {
		slog.Warn("failed to emit client event", "op", op, "err", err)
	}
}
