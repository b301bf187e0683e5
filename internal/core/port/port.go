package port

import (
	"context"
	"sync"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

////////////////////////////////////////////////////////
///////////////          INBOUND          //////////////
////////////////////////////////////////////////////////

type CartStore interface {
	AddToCart(context.Context, *domain.Product) error
	RemoveFromCart(ctx context.Context, id string) error
	UpdateQuantity(ctx context.Context, id string, q int) error
	ClearCart(context.Context) error
	Lines() []domain.CartLine
	TotalItems() int
	TotalPrice() float64
}

type CompareStore interface {
	AddToCompare(context.Context, domain.Product) error
	RemoveFromCompare(ctx context.Context, id string) error
	ClearCompare(context.Context) error
	IsInCompare(id string) bool
	Entries() []domain.CompareEntry
}

type WishlistStore interface {
	AddToWishlist(context.Context, domain.Product) error
	RemoveFromWishlist(ctx context.Context, id string) error
	IsInWishlist(id string) bool
	Entries() []domain.WishlistEntry
}

// A StoresOpener hydrates the session scoped stores.
type StoresOpener interface {
	OpenCart(ctx context.Context, sessionID string) CartStore
	OpenCompare(ctx context.Context, sessionID string) CompareStore
	OpenWishlist(ctx context.Context, sessionID string) WishlistStore
}

type OrderStatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID, status string) (domain.Order, error)
}

type BidPlacer interface {
	PlaceBid(
		ctx context.Context, productID, bidderID string, amount float64,
	) (domain.Bid, error)
}

type BidLister interface {
	ListBids(ctx context.Context, productID string) ([]domain.Bid, error)
}

type BidSummaryReader interface {
	BidSummary(ctx context.Context, productID string) (domain.BidSummary, error)
}

type AuctionViewer interface {
	ViewAuction(ctx context.Context, productID string) (domain.AuctionView, error)
	SubmitBid(
		ctx context.Context, productID, bidderID string, amount float64,
	) (domain.AuctionView, error)
}

type ShipmentsMailer interface {
	MailShipments(context.Context, []domain.ShipmentNotice) error
}

////////////////////////////////////////////////////////
///////////////          OUTBOUND         //////////////
////////////////////////////////////////////////////////

type CartStorage interface {
	LoadCart(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, sessionID string, lines []domain.CartLine) error
}

type CompareStorage interface {
	LoadCompare(ctx context.Context, sessionID string) ([]domain.CompareEntry, error)
	SaveCompare(ctx context.Context, sessionID string, es []domain.CompareEntry) error
	DeleteCompare(ctx context.Context, sessionID string) error
}

type WishlistStorage interface {
	LoadWishlist(ctx context.Context, sessionID string) ([]domain.WishlistEntry, error)
	SaveWishlist(ctx context.Context, sessionID string, es []domain.WishlistEntry) error
}

type ImageResolver interface {
	ResolveImage(ref string) (string, error)
}

type OrdersStorage interface {
	ReadOrder(ctx context.Context, orderID string) (domain.Order, error)
	UpdateOrderStatus(
		ctx context.Context, orderID string, status domain.OrderStatus, at time.Time,
	) (domain.Order, error)
	// ShipOrder sets the shipped status and tracking number together.
	// It reports false when the order already has a tracking number.
	ShipOrder(
		ctx context.Context, orderID, trackingNumber string, at time.Time,
	) (domain.Order, bool, error)
}

type TrackingGenerator interface {
	NewTrackingNumber() (string, error)
}

type ShipmentNotifier interface {
	NotifyShipped(context.Context, domain.ShipmentNotice) error
}

type BidsStorage interface {
	StoreBid(context.Context, domain.Bid) error
	ListBids(ctx context.Context, productID string) ([]domain.Bid, error)
}

type AuctionsStorage interface {
	ReadAuction(ctx context.Context, productID string) (domain.Auction, error)
}

type BidEventsProducer interface {
	ProduceBid(context.Context, domain.Bid) error
}

type Mailer interface {
	SendShipmentEmail(context.Context, domain.ShipmentNotice) error
}

type BidSummaryProcessor interface {
	runnerContextWg
	closer
}
