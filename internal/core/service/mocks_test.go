package service

import (
	"context"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCartStorage struct {
	mock.Mock
}

func (m *MockCartStorage) LoadCart(
	ctx context.Context, sessionID string,
) ([]domain.CartLine, error) {
	args := m.Called(ctx, sessionID)
	lines, _ := args.Get(0).([]domain.CartLine)
	return lines, args.Error(1)
}

func (m *MockCartStorage) SaveCart(
	ctx context.Context, sessionID string, lines []domain.CartLine,
) error {
	args := m.Called(ctx, sessionID, lines)
	return args.Error(0)
}

type MockCompareStorage struct {
	mock.Mock
}

func (m *MockCompareStorage) LoadCompare(
	ctx context.Context, sessionID string,
) ([]domain.CompareEntry, error) {
	args := m.Called(ctx, sessionID)
	es, _ := args.Get(0).([]domain.CompareEntry)
	return es, args.Error(1)
}

func (m *MockCompareStorage) SaveCompare(
	ctx context.Context, sessionID string, es []domain.CompareEntry,
) error {
	args := m.Called(ctx, sessionID, es)
	return args.Error(0)
}

func (m *MockCompareStorage) DeleteCompare(
	ctx context.Context, sessionID string,
) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockWishlistStorage struct {
	mock.Mock
}

func (m *MockWishlistStorage) LoadWishlist(
	ctx context.Context, sessionID string,
) ([]domain.WishlistEntry, error) {
	args := m.Called(ctx, sessionID)
	es, _ := args.Get(0).([]domain.WishlistEntry)
	return es, args.Error(1)
}

func (m *MockWishlistStorage) SaveWishlist(
	ctx context.Context, sessionID string, es []domain.WishlistEntry,
) error {
	args := m.Called(ctx, sessionID, es)
	return args.Error(0)
}

type MockImageResolver struct {
	mock.Mock
}

func (m *MockImageResolver) ResolveImage(ref string) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

type MockOrdersStorage struct {
	mock.Mock
}

func (m *MockOrdersStorage) ReadOrder(
	ctx context.Context, orderID string,
) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) UpdateOrderStatus(
	ctx context.Context, orderID string, status domain.OrderStatus, at time.Time,
) (domain.Order, error) {
	args := m.Called(ctx, orderID, status, at)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) ShipOrder(
	ctx context.Context, orderID, trackingNumber string, at time.Time,
) (domain.Order, bool, error) {
	args := m.Called(ctx, orderID, trackingNumber, at)
	return args.Get(0).(domain.Order), args.Bool(1), args.Error(2)
}

type MockTrackingGenerator struct {
	mock.Mock
}

func (m *MockTrackingGenerator) NewTrackingNumber() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type MockShipmentNotifier struct {
	mock.Mock
}

func (m *MockShipmentNotifier) NotifyShipped(
	ctx context.Context, n domain.ShipmentNotice,
) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockBidsStorage struct {
	mock.Mock
}

func (m *MockBidsStorage) StoreBid(ctx context.Context, b domain.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidsStorage) ListBids(
	ctx context.Context, productID string,
) ([]domain.Bid, error) {
	args := m.Called(ctx, productID)
	bids, _ := args.Get(0).([]domain.Bid)
	return bids, args.Error(1)
}

type MockBidEventsProducer struct {
	mock.Mock
}

func (m *MockBidEventsProducer) ProduceBid(ctx context.Context, b domain.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type MockBidSummaryReader struct {
	mock.Mock
}

func (m *MockBidSummaryReader) BidSummary(
	ctx context.Context, productID string,
) (domain.BidSummary, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.BidSummary), args.Error(1)
}

type MockBidPlacer struct {
	mock.Mock
}

func (m *MockBidPlacer) PlaceBid(
	ctx context.Context, productID, bidderID string, amount float64,
) (domain.Bid, error) {
	args := m.Called(ctx, productID, bidderID, amount)
	return args.Get(0).(domain.Bid), args.Error(1)
}

type MockBidLister struct {
	mock.Mock
}

func (m *MockBidLister) ListBids(
	ctx context.Context, productID string,
) ([]domain.Bid, error) {
	args := m.Called(ctx, productID)
	bids, _ := args.Get(0).([]domain.Bid)
	return bids, args.Error(1)
}

type MockAuctionsStorage struct {
	mock.Mock
}

func (m *MockAuctionsStorage) ReadAuction(
	ctx context.Context, productID string,
) (domain.Auction, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Auction), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendShipmentEmail(
	ctx context.Context, n domain.ShipmentNotice,
) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
