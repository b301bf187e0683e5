package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Bid amounts are stored with cent precision.
const (
	amountPlaces = 2
	MaxBidAmount = 9_999_999_999.99
)

type Bid struct {
	ID        string
	ProductID string
	BidderID  string
	Amount    float64
	Timestamp time.Time
}

// RoundAmount rounds v half away from zero to whole cents.
// NaN and infinities are returned as is.
func RoundAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(amountPlaces).InexactFloat64()
}

// An Auction describes the bidding window of a product.
type Auction struct {
	ProductID     string
	StartingPrice float64
	EndTime       time.Time
}

// Remaining returns the time left until the auction closes, never negative.
func (a Auction) Remaining(now time.Time) time.Duration {
	return max(a.EndTime.Sub(now), 0)
}

func (a Auction) Ended(now time.Time) bool {
	return a.Remaining(now) <= 0
}

// HighestBid returns the largest amount among bids,
// or floor when there is no bid above it.
func HighestBid(floor float64, bids []Bid) float64 {
	highest := floor
	for _, b := range bids {
		highest = max(highest, b.Amount)
	}
	return highest
}

// A BidSummary is the per-product projection of placed bids.
type BidSummary struct {
	ProductID string
	Highest   float64
	Count     int
	UpdatedAt time.Time
}

func (s BidSummary) Apply(b Bid) BidSummary {
	s.ProductID = b.ProductID
	s.Highest = max(s.Highest, b.Amount)
	s.Count++
	if b.Timestamp.After(s.UpdatedAt) {
		s.UpdatedAt = b.Timestamp
	}
	return s
}

// An AuctionView is the rendered state of the bidding display.
type AuctionView struct {
	Auction   Auction
	Remaining time.Duration
	Ended     bool
	Highest   float64
	Bids      []Bid
}
