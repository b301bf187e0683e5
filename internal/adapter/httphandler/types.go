package httphandler

import (
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
)

type (
	Product struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Stock       int     `json:"stock"`
		Rating      float64 `json:"rating"`
		Description string  `json:"description"`
		ImageRef    string  `json:"imageRef"`
	}

	QuantityRequest struct {
		Quantity int `json:"quantity"`
	}

	StatusRequest struct {
		Status string `json:"status"`
	}

	PlaceBidRequest struct {
		ProductID string  `json:"productId"`
		Amount    float64 `json:"amount"`
	}

	SubmitBidRequest struct {
		Amount float64 `json:"amount"`
	}
)

func (p Product) toDomain() domain.Product {
	return domain.Product(p)
}

type (
	CartLine struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		UnitPrice     float64 `json:"unitPrice"`
		Quantity      int     `json:"quantity"`
		ImageRef      string  `json:"imageRef"`
		CategoryLabel string  `json:"categoryLabel"`
		Description   string  `json:"description"`
	}

	CartResponse struct {
		Items      []CartLine `json:"items"`
		TotalItems int        `json:"totalItems"`
		TotalPrice float64    `json:"totalPrice"`
	}

	CompareEntry struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Stock       int     `json:"stock"`
		Rating      float64 `json:"rating"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}

	CompareResponse struct {
		Items []CompareEntry `json:"items"`
	}

	WishlistEntry struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		ImageURL    string  `json:"imageUrl"`
	}

	WishlistResponse struct {
		Items []WishlistEntry `json:"items"`
	}
)

type (
	OrderItem struct {
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		Quantity  int     `json:"quantity"`
		UnitPrice float64 `json:"unitPrice"`
	}

	OrderResponse struct {
		ID             string      `json:"id"`
		Status         string      `json:"status"`
		TrackingNumber string      `json:"trackingNumber,omitempty"`
		Items          []OrderItem `json:"items"`
		Total          float64     `json:"total"`
		UpdatedAt      time.Time   `json:"updatedAt"`
	}
)

type (
	Bid struct {
		ID        string    `json:"id"`
		ProductID string    `json:"productId"`
		BidderID  string    `json:"bidderId"`
		Amount    float64   `json:"amount"`
		Timestamp time.Time `json:"timestamp"`
	}

	BidSummaryResponse struct {
		ProductID string    `json:"productId"`
		Highest   float64   `json:"highest"`
		Count     int       `json:"count"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	AuctionResponse struct {
		ProductID        string    `json:"productId"`
		StartingPrice    float64   `json:"startingPrice"`
		EndTime          time.Time `json:"endTime"`
		RemainingSeconds int64     `json:"remainingSeconds"`
		Ended            bool      `json:"ended"`
		Highest          float64   `json:"highest"`
		Bids             []Bid     `json:"bids"`
	}
)

func cartResponse(lines []domain.CartLine, totalItems int, totalPrice float64) CartResponse {
	items := make([]CartLine, len(lines))
	for i, l := range lines {
		items[i] = CartLine(l)
	}
	return CartResponse{Items: items, TotalItems: totalItems, TotalPrice: totalPrice}
}

func compareResponse(es []domain.CompareEntry) CompareResponse {
	items := make([]CompareEntry, len(es))
	for i, e := range es {
		items[i] = CompareEntry(e)
	}
	return CompareResponse{items}
}

func wishlistResponse(es []domain.WishlistEntry) WishlistResponse {
	items := make([]WishlistEntry, len(es))
	for i, e := range es {
		items[i] = WishlistEntry(e)
	}
	return WishlistResponse{items}
}

func orderResponse(o domain.Order) OrderResponse {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem(item)
	}
	return OrderResponse{
		ID:             o.ID,
		Status:         string(o.Status),
		TrackingNumber: o.TrackingNumber,
		Items:          items,
		Total:          o.Total,
		UpdatedAt:      o.UpdatedAt,
	}
}

func bidsResponse(bs []domain.Bid) []Bid {
	res := make([]Bid, len(bs))
	for i, b := range bs {
		res[i] = Bid(b)
	}
	return res
}

func auctionResponse(v domain.AuctionView) AuctionResponse {
	return AuctionResponse{
		ProductID:        v.Auction.ProductID,
		StartingPrice:    v.Auction.StartingPrice,
		EndTime:          v.Auction.EndTime,
		RemainingSeconds: int64(v.Remaining / time.Second),
		Ended:            v.Ended,
		Highest:          v.Highest,
		Bids:             bidsResponse(v.Bids),
	}
}
