package domain

import "errors"

var (
	ErrMaxQuantity      = errors.New("maximum quantity reached")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidProduct   = errors.New("product id is required")
	ErrCompareLimit     = errors.New("compare limit reached")
	ErrAlreadyInCompare = errors.New("already in compare list")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrOrderNotFound    = errors.New("order not found")
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrInvalidBid       = errors.New("invalid bid")
	ErrBidTooLow        = errors.New("bid must exceed current highest bid")
	ErrAuctionEnded     = errors.New("auction has ended")

	// ErrNotPersisted marks a store mutation applied in memory
	// but not written to the session storage.
	ErrNotPersisted = errors.New("state is not persisted")
)
