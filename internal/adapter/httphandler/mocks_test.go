package httphandler

import (
	"context"
	"errors"
	"slices"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrderStatusUpdater struct{ mock.Mock }

func (m *MockOrderStatusUpdater) UpdateStatus(
	ctx context.Context, orderID, status string,
) (domain.Order, error) {
	args := m.Called(ctx, orderID, status)
	return args.Get(0).(domain.Order), args.Error(1)
}

type MockBidPlacer struct{ mock.Mock }

func (m *MockBidPlacer) PlaceBid(
	ctx context.Context, productID, bidderID string, amount float64,
) (domain.Bid, error) {
	args := m.Called(ctx, productID, bidderID, amount)
	return args.Get(0).(domain.Bid), args.Error(1)
}

type MockBidLister struct{ mock.Mock }

func (m *MockBidLister) ListBids(
	ctx context.Context, productID string,
) ([]domain.Bid, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Bid), args.Error(1)
}

type MockBidSummaryReader struct{ mock.Mock }

func (m *MockBidSummaryReader) BidSummary(
	ctx context.Context, productID string,
) (domain.BidSummary, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.BidSummary), args.Error(1)
}

type MockAuctionViewer struct{ mock.Mock }

func (m *MockAuctionViewer) ViewAuction(
	ctx context.Context, productID string,
) (domain.AuctionView, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.AuctionView), args.Error(1)
}

func (m *MockAuctionViewer) SubmitBid(
	ctx context.Context, productID, bidderID string, amount float64,
) (domain.AuctionView, error) {
	args := m.Called(ctx, productID, bidderID, amount)
	return args.Get(0).(domain.AuctionView), args.Error(1)
}

var errSaveFailed = errors.New("save failed")

// memStorage keeps session state in memory for all three stores.
type memStorage struct {
	carts     map[string][]domain.CartLine
	compares  map[string][]domain.CompareEntry
	wishlists map[string][]domain.WishlistEntry
	failSave  bool
}

func newMemStorage() *memStorage {
	return &memStorage{
		carts:     make(map[string][]domain.CartLine),
		compares:  make(map[string][]domain.CompareEntry),
		wishlists: make(map[string][]domain.WishlistEntry),
	}
}

func (s *memStorage) LoadCart(ctx context.Context, sid string) ([]domain.CartLine, error) {
	return slices.Clone(s.carts[sid]), nil
}

func (s *memStorage) SaveCart(ctx context.Context, sid string, ls []domain.CartLine) error {
	if s.failSave {
		return errSaveFailed
	}
	s.carts[sid] = slices.Clone(ls)
	return nil
}

func (s *memStorage) LoadCompare(ctx context.Context, sid string) ([]domain.CompareEntry, error) {
	return slices.Clone(s.compares[sid]), nil
}

func (s *memStorage) SaveCompare(ctx context.Context, sid string, es []domain.CompareEntry) error {
	if s.failSave {
		return errSaveFailed
	}
	s.compares[sid] = slices.Clone(es)
	return nil
}

func (s *memStorage) DeleteCompare(ctx context.Context, sid string) error {
	delete(s.compares, sid)
	return nil
}

func (s *memStorage) LoadWishlist(ctx context.Context, sid string) ([]domain.WishlistEntry, error) {
	return slices.Clone(s.wishlists[sid]), nil
}

func (s *memStorage) SaveWishlist(ctx context.Context, sid string, es []domain.WishlistEntry) error {
	if s.failSave {
		return errSaveFailed
	}
	s.wishlists[sid] = slices.Clone(es)
	return nil
}

type prefixResolver struct{}

func (prefixResolver) ResolveImage(ref string) (string, error) {
	if ref == "" {
		return "", errors.New("empty ref")
	}
	return "https://cdn.test/" + ref, nil
}
