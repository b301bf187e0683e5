package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
)

var _ port.StoresOpener = (*Stores)(nil)

// Stores opens the session scoped cart, compare and wishlist stores.
type Stores struct {
	cartStorage      port.CartStorage
	compareStorage   port.CompareStorage
	wishlistStorage  port.WishlistStorage
	images           port.ImageResolver
	placeholderImage string
}

func NewStores(
	cartStorage port.CartStorage,
	compareStorage port.CompareStorage,
	wishlistStorage port.WishlistStorage,
	images port.ImageResolver,
	placeholderImage string,
) Stores {
	return Stores{
		cartStorage,
		compareStorage,
		wishlistStorage,
		images,
		placeholderImage,
	}
}

// OpenCart hydrates the cart of the session.
//
// A storage or decode failure is logged and yields an empty cart.
func (s Stores) OpenCart(ctx context.Context, sessionID string) port.CartStore {
	const op = "Stores.OpenCart"

	lines, err := s.cartStorage.LoadCart(ctx, sessionID)
	if err != nil {
		slog.Warn("failed to hydrate cart, start empty", "op", op, "err", err)
		lines = nil
	}
	return &CartStore{
		sessionID: sessionID,
		cart:      domain.NewCart(lines),
		storage:   s.cartStorage,
	}
}

func (s Stores) OpenCompare(
	ctx context.Context, sessionID string,
) port.CompareStore {
	const op = "Stores.OpenCompare"

	entries, err := s.compareStorage.LoadCompare(ctx, sessionID)
	if err != nil {
		slog.Warn("failed to hydrate compare list, start empty", "op", op, "err", err)
		entries = nil
	}
	return &CompareStore{
		sessionID: sessionID,
		list:      domain.NewCompareList(entries),
		storage:   s.compareStorage,
	}
}

func (s Stores) OpenWishlist(
	ctx context.Context, sessionID string,
) port.WishlistStore {
	const op = "Stores.OpenWishlist"

	entries, err := s.wishlistStorage.LoadWishlist(ctx, sessionID)
	if err != nil {
		slog.Warn("failed to hydrate wishlist, start empty", "op", op, "err", err)
		entries = nil
	}
	return &WishlistStore{
		sessionID:        sessionID,
		wishlist:         domain.NewWishlist(entries),
		storage:          s.wishlistStorage,
		images:           s.images,
		placeholderImage: s.placeholderImage,
	}
}

func notPersisted(op string, err error) error {
	slog.Warn("failed to persist session state", "op", op, "err", err)
	return fmt.Errorf("%s: %w: %w", op, domain.ErrNotPersisted, err)
}

////////////////////////////////////////////////////////
///////////////           CART            //////////////
////////////////////////////////////////////////////////

var _ port.CartStore = (*CartStore)(nil)

type CartStore struct {
	sessionID string
	cart      domain.Cart
	storage   port.CartStorage
}

func (s *CartStore) AddToCart(ctx context.Context, p *domain.Product) error {
	const op = "CartStore.AddToCart"

	if p == nil {
		return nil
	}

	if err := s.cart.Add(p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.persist(ctx, op)
}

func (s *CartStore) RemoveFromCart(ctx context.Context, id string) error {
	const op = "CartStore.RemoveFromCart"
	s.cart.Remove(id)
	return s.persist(ctx, op)
}

func (s *CartStore) UpdateQuantity(ctx context.Context, id string, q int) error {
	const op = "CartStore.UpdateQuantity"

	if err := s.cart.UpdateQuantity(id, q); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.persist(ctx, op)
}

func (s *CartStore) ClearCart(ctx context.Context) error {
	const op = "CartStore.ClearCart"
	s.cart.Clear()
	return s.persist(ctx, op)
}

func (s *CartStore) Lines() []domain.CartLine {
	return s.cart.Lines()
}

func (s *CartStore) TotalItems() int {
	return s.cart.TotalItems()
}

func (s *CartStore) TotalPrice() float64 {
	return s.cart.TotalPrice()
}

func (s *CartStore) persist(ctx context.Context, op string) error {
	err := s.storage.SaveCart(ctx, s.sessionID, s.cart.Lines())
	if err != nil {
		return notPersisted(op, err)
	}
	return nil
}

////////////////////////////////////////////////////////
///////////////          COMPARE          //////////////
////////////////////////////////////////////////////////

var _ port.CompareStore = (*CompareStore)(nil)

type CompareStore struct {
	sessionID string
	list      domain.CompareList
	storage   port.CompareStorage
}

func (s *CompareStore) AddToCompare(ctx context.Context, p domain.Product) error {
	const op = "CompareStore.AddToCompare"

	if err := s.list.Add(p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.persist(ctx, op)
}

func (s *CompareStore) RemoveFromCompare(ctx context.Context, id string) error {
	const op = "CompareStore.RemoveFromCompare"
	s.list.Remove(id)
	return s.persist(ctx, op)
}

func (s *CompareStore) ClearCompare(ctx context.Context) error {
	const op = "CompareStore.ClearCompare"

	s.list.Clear()
	if err := s.storage.DeleteCompare(ctx, s.sessionID); err != nil {
		return notPersisted(op, err)
	}
	return nil
}

func (s *CompareStore) IsInCompare(id string) bool {
	return s.list.Contains(id)
}

func (s *CompareStore) Entries() []domain.CompareEntry {
	return s.list.Entries()
}

func (s *CompareStore) persist(ctx context.Context, op string) error {
	err := s.storage.SaveCompare(ctx, s.sessionID, s.list.Entries())
	if err != nil {
		return notPersisted(op, err)
	}
	return nil
}

////////////////////////////////////////////////////////
///////////////          WISHLIST         //////////////
////////////////////////////////////////////////////////

var _ port.WishlistStore = (*WishlistStore)(nil)

type WishlistStore struct {
	sessionID        string
	wishlist         domain.Wishlist
	storage          port.WishlistStorage
	images           port.ImageResolver
	placeholderImage string
}

func (s *WishlistStore) AddToWishlist(ctx context.Context, p domain.Product) error {
	const op = "WishlistStore.AddToWishlist"

	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if s.wishlist.Contains(p.ID) {
		return nil
	}

	s.wishlist.Add(p, s.resolveImage(p.ImageRef))
	return s.persist(ctx, op)
}

func (s *WishlistStore) RemoveFromWishlist(ctx context.Context, id string) error {
	const op = "WishlistStore.RemoveFromWishlist"
	s.wishlist.Remove(id)
	return s.persist(ctx, op)
}

func (s *WishlistStore) IsInWishlist(id string) bool {
	return s.wishlist.Contains(id)
}

func (s *WishlistStore) Entries() []domain.WishlistEntry {
	return s.wishlist.Entries()
}

func (s *WishlistStore) resolveImage(ref string) string {
	const op = "WishlistStore.resolveImage"

	url, err := s.images.ResolveImage(ref)
	if err != nil {
		slog.Warn(
			"failed to resolve image, use placeholder",
			"op", op, "ref", ref, "err", err,
		)
		return s.placeholderImage
	}
	return url
}

func (s *WishlistStore) persist(ctx context.Context, op string) error {
	err := s.storage.SaveWishlist(ctx, s.sessionID, s.wishlist.Entries())
	if err != nil {
		return notPersisted(op, err)
	}
	return nil
}
