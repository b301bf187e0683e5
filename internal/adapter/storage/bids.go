package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
)

var (
	_ port.BidsStorage     = (*BidsRepository)(nil)
	_ port.AuctionsStorage = (*AuctionsRepository)(nil)
)

type BidsRepository struct {
	sqldb sqldb
}

func NewBidsRepository(sqldb sqldb) BidsRepository {
	return BidsRepository{sqldb}
}

func (r BidsRepository) StoreBid(ctx context.Context, b domain.Bid) error {
	const op = "BidsRepository.StoreBid"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO bids (bid_id, product_id, bidder_id, amount, placed_at)
		VALUES ($1, $2, $3, $4, $5);`

	_, err := r.sqldb.ExecContext(ctx, query,
		b.ID, b.ProductID, b.BidderID, b.Amount, b.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

// ListBids returns the bids of the product, highest amount first.
func (r BidsRepository) ListBids(
	ctx context.Context, productID string,
) (bids []domain.Bid, err error) {
	const op = "BidsRepository.ListBids"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT bid_id, product_id, bidder_id, amount, placed_at
		FROM bids
		WHERE product_id = $1
		ORDER BY amount DESC, placed_at ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "err", err)
		}
	}()

	bids = make([]domain.Bid, 0)
	for rows.Next() {
		var b domain.Bid
		err := rows.Scan(&b.ID, &b.ProductID, &b.BidderID, &b.Amount, &b.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bids, nil
}

type AuctionsRepository struct {
	sqldb sqldb
}

func NewAuctionsRepository(sqldb sqldb) AuctionsRepository {
	return AuctionsRepository{sqldb}
}

func (r AuctionsRepository) ReadAuction(
	ctx context.Context, productID string,
) (domain.Auction, error) {
	const op = "AuctionsRepository.ReadAuction"

	if err := ctx.Err(); err != nil {
		return domain.Auction{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT product_id, starting_price, end_time
		FROM auctions WHERE product_id = $1;`

	var a domain.Auction
	err := r.sqldb.QueryRowContext(ctx, query, productID).
		Scan(&a.ProductID, &a.StartingPrice, &a.EndTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Auction{}, fmt.Errorf("%s: %w", op, domain.ErrAuctionNotFound)
		}
		return domain.Auction{}, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
