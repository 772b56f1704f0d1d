package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const WishlistBlobKey = "wishlist_v1"

var _ port.WishlistOperator = (*WishlistService)(nil)

// A WishlistService owns the wishlist mapping. Presence is binary;
// mutations persist, refresh and notify like the cart.
type WishlistService struct {
	mu        sync.Mutex
	wishlist  domain.Wishlist
	blobs     port.BlobStore
	notifier  port.Notifier
	events    port.EventsEmitter
	cart      port.CartAdder
	onRefresh func()
}

func NewWishlistService(
	ctx context.Context,
	blobs port.BlobStore,
	notifier port.Notifier,
	events port.EventsEmitter,
	cart port.CartAdder,
) *WishlistService {
	if events == nil {
		events = discardEmitter{}
	}
	s := &WishlistService{
		wishlist:  domain.NewWishlist(),
		blobs:     blobs,
		notifier:  notifier,
		events:    events,
		cart:      cart,
		onRefresh: func() {},
	}
	s.restore(ctx)
	return s
}

func (s *WishlistService) Subscribe(fn func()) {
	s.onRefresh = fn
}

// Toggle removes p when present, delegating to Remove including its
// notice, and inserts the snapshot otherwise.
func (s *WishlistService) Toggle(ctx context.Context, p domain.Product) {
	key := p.Key()

	s.mu.Lock()
	if s.wishlist.Has(key) {
		s.mu.Unlock()
		s.Remove(ctx, key)
		return
	}
	s.wishlist.Add(p)
	s.persist(ctx)
	s.mu.Unlock()

	s.onRefresh()
	s.notifier.Notify(domain.NoticeSuccess, "Added to wishlist")
	s.emit(ctx, domain.EventWishlistAdd, key)
}

// Remove deletes the snapshot for key. A missing key is a silent no-op.
func (s *WishlistService) Remove(ctx context.Context, key string) {
	s.mu.Lock()
	ok := s.wishlist.Remove(key)
	if ok {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	s.onRefresh()
	s.notifier.Notify(domain.NoticeSuccess, "Removed from wishlist")
	s.emit(ctx, domain.EventWishlistRemove, key)
}

// MoveToCart adds the stored snapshot to the cart with quantity 1 and
// then removes it from the wishlist. The add happens first: it needs
// the snapshot that the removal deletes.
func (s *WishlistService) MoveToCart(ctx context.Context, key string) {
	s.mu.Lock()
	p, ok := s.wishlist.Product(key)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.cart.Add(ctx, p, 1)
	s.Remove(ctx, key)
}

func (s *WishlistService) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Products()
}

func (s *WishlistService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Count()
}

// caller must hold s.mu
func (s *WishlistService) persist(ctx context.Context) {
	const op = "WishlistService.persist"
	blob := wishlistToBlob(&s.wishlist)
	if err := s.blobs.Save(ctx, WishlistBlobKey, blob); err != nil {
		slog.Warn("failed to persist wishlist", "op", op, "err", err)
	}
}

func (s *WishlistService) restore(ctx context.Context) {
	var blob []productBlob
	if !s.blobs.Load(ctx, WishlistBlobKey, &blob) {
		return
	}
	for _, p := range blob {
		s.wishlist.Add(p.toDomain())
	}
}

func (s *WishlistService) emit(ctx context.Context, kind domain.EventKind, key string) {
	const op = "WishlistService.emit"
	ev := domain.ClientEvent{
		Kind:       kind,
		ProductID:  key,
		OccurredAt: time.Now(),
	}
	if err := s.events.EmitEvent(ctx, ev); err != nil {
		slog.Warn("failed to emit client event", "op", op, "err", err)
	}
}
