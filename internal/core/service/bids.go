package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
)

var _ port.BidPlacer = (*Bids)(nil)
var _ port.BidLister = (*Bids)(nil)
var _ port.BidSummaryReader = (*Bids)(nil)

// Bids records bids and serves the bid lists.
//
// PlaceBid does not compare the amount with the current highest bid,
// that check belongs to [BidBoard].
type Bids struct {
	storage port.BidsStorage
	events  port.BidEventsProducer
	summary port.BidSummaryReader
	now     func() time.Time
	newID   func() string
}

func NewBids(
	storage port.BidsStorage,
	events port.BidEventsProducer,
	summary port.BidSummaryReader,
) Bids {
	return Bids{
		storage: storage,
		events:  events,
		summary: summary,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s Bids) PlaceBid(
	ctx context.Context, productID, bidderID string, amount float64,
) (domain.Bid, error) {
	const op = "Bids.PlaceBid"
	log := slog.With("op", op, "productID", productID)

	if err := ctx.Err(); err != nil {
		return domain.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	amount = domain.RoundAmount(amount)
	if productID == "" || bidderID == "" || !validAmount(amount) {
		return domain.Bid{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidBid)
	}

	b := domain.Bid{
		ID:        s.newID(),
		ProductID: productID,
		BidderID:  bidderID,
		Amount:    amount,
		Timestamp: s.now().UTC(),
	}

	if err := s.storage.StoreBid(ctx, b); err != nil {
		return domain.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	// the summary is a projection, the stored bid is authoritative
	if err := s.events.ProduceBid(ctx, b); err != nil {
		log.Error("failed to produce bid event", "bidID", b.ID, "err", err)
	}

	log.Info("bid placed", "bidID", b.ID, "amount", b.Amount)
	return b, nil
}

// ListBids returns the bids of the product by amount descending.
func (s Bids) ListBids(
	ctx context.Context, productID string,
) ([]domain.Bid, error) {
	const op = "Bids.ListBids"

	bids, err := s.storage.ListBids(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bids, nil
}

func (s Bids) BidSummary(
	ctx context.Context, productID string,
) (domain.BidSummary, error) {
	const op = "Bids.BidSummary"

	summary, err := s.summary.BidSummary(ctx, productID)
	if err != nil {
		return domain.BidSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return summary, nil
}

// validAmount expects v already rounded to cents.
func validAmount(v float64) bool {
	return v > 0 && v <= domain.MaxBidAmount && !math.IsInf(v, 0) && !math.IsNaN(v)
}
