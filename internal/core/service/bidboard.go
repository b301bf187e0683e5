package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
)

const (
	countdownInterval   = time.Second
	DefaultPollInterval = 5 * time.Second
)

// A BidBoard is the bidding display of one auction:
// a countdown, the displayed bid list and locally checked submission.
//
// The bid list is optimistic. A submitted bid is shown at once
// and only a later [BidBoard.Refresh] replaces the list with what the server holds.
type BidBoard struct {
	mu        sync.Mutex
	auction   domain.Auction
	bids      []domain.Bid
	remaining time.Duration
	ended     bool

	placer port.BidPlacer
	lister port.BidLister
	now    func() time.Time
}

func NewBidBoard(
	auction domain.Auction,
	placer port.BidPlacer,
	lister port.BidLister,
	now func() time.Time,
) *BidBoard {
	if now == nil {
		now = time.Now
	}
	b := &BidBoard{
		auction: auction,
		placer:  placer,
		lister:  lister,
		now:     now,
	}
	b.Tick()
	return b
}

// Tick recomputes the countdown. Once it reaches zero the auction stays ended.
func (b *BidBoard) Tick() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tick()
}

func (b *BidBoard) tick() {
	b.remaining = b.auction.Remaining(b.now())
	if b.remaining <= 0 {
		b.ended = true
	}
}

// Refresh replaces the displayed bids with a fresh fetch.
func (b *BidBoard) Refresh(ctx context.Context) error {
	const op = "BidBoard.Refresh"

	bids, err := b.lister.ListBids(ctx, b.auction.ProductID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	b.bids = bids
	b.mu.Unlock()
	return nil
}

// Submit places a bid when amount exceeds the current highest bid.
//
// A rejected bid never reaches the placer and leaves the list as is.
func (b *BidBoard) Submit(
	ctx context.Context, bidderID string, amount float64,
) (domain.Bid, error) {
	const op = "BidBoard.Submit"

	amount = domain.RoundAmount(amount)

	b.mu.Lock()
	b.tick()
	if b.ended {
		b.mu.Unlock()
		return domain.Bid{}, fmt.Errorf("%s: %w", op, domain.ErrAuctionEnded)
	}
	highest := domain.HighestBid(b.auction.StartingPrice, b.bids)
	b.mu.Unlock()

	if amount <= highest {
		return domain.Bid{}, fmt.Errorf("%s: %w", op, domain.ErrBidTooLow)
	}

	bid, err := b.placer.PlaceBid(ctx, b.auction.ProductID, bidderID, amount)
	if err != nil {
		return domain.Bid{}, fmt.Errorf("%s: %w", op, err)
	}

	b.mu.Lock()
	b.bids = slices.Insert(b.bids, 0, bid)
	b.mu.Unlock()
	return bid, nil
}

func (b *BidBoard) Ended() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ended
}

func (b *BidBoard) View() domain.AuctionView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.AuctionView{
		Auction:   b.auction,
		Remaining: b.remaining,
		Ended:     b.ended,
		Highest:   domain.HighestBid(b.auction.StartingPrice, b.bids),
		Bids:      slices.Clone(b.bids),
	}
}

// Run ticks the countdown every second and refreshes the bids every poll
// until ctx is done or the auction ends. An ended auction gets one last refresh.
func (b *BidBoard) Run(ctx context.Context, poll time.Duration) {
	const op = "BidBoard.Run"
	log := slog.With("op", op, "productID", b.auction.ProductID)

	if poll <= 0 {
		poll = DefaultPollInterval
	}

	finish := func() {
		if err := b.Refresh(ctx); err != nil {
			log.Warn("failed to refresh bids of ended auction", "err", err)
		}
		log.Debug("auction ended")
	}

	if b.Ended() {
		finish()
		return
	}

	countdown := time.NewTicker(countdownInterval)
	defer countdown.Stop()
	refresh := time.NewTicker(poll)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-countdown.C:
			b.Tick()
			if b.Ended() {
				finish()
				return
			}
		case <-refresh.C:
			if err := b.Refresh(ctx); err != nil {
				log.Warn("failed to refresh bids", "err", err)
			}
		}
	}
}

var _ port.AuctionViewer = (*Auctions)(nil)

// Auctions renders bidding displays for the server side pages.
// It keeps one board per product so every request sees the same bid list.
type Auctions struct {
	storage port.AuctionsStorage
	placer  port.BidPlacer
	lister  port.BidLister
	now     func() time.Time
	boards  *boardRegistry
}

type boardRegistry struct {
	mu     sync.Mutex
	boards map[string]*BidBoard
	ctx    context.Context
	poll   time.Duration
}

func NewAuctions(
	storage port.AuctionsStorage,
	placer port.BidPlacer,
	lister port.BidLister,
) Auctions {
	return Auctions{
		storage: storage,
		placer:  placer,
		lister:  lister,
		now:     time.Now,
		boards:  &boardRegistry{boards: make(map[string]*BidBoard)},
	}
}

// Run drives the countdown and polling of every open board until ctx is done.
// Boards opened while Run is active are started at once.
func (s Auctions) Run(ctx context.Context, poll time.Duration) {
	const op = "Auctions.Run"
	log := slog.With("op", op)

	r := s.boards
	r.mu.Lock()
	r.ctx, r.poll = ctx, poll
	for _, board := range r.boards {
		go board.Run(ctx, poll)
	}
	r.mu.Unlock()

	log.Info("bid boards are running")
	<-ctx.Done()

	r.mu.Lock()
	r.ctx = nil
	r.mu.Unlock()
	log.Info("bid boards are stopped")
}

func (s Auctions) ViewAuction(
	ctx context.Context, productID string,
) (domain.AuctionView, error) {
	const op = "Auctions.ViewAuction"

	board, err := s.openBoard(ctx, productID)
	if err != nil {
		return domain.AuctionView{}, fmt.Errorf("%s: %w", op, err)
	}
	return board.View(), nil
}

func (s Auctions) SubmitBid(
	ctx context.Context, productID, bidderID string, amount float64,
) (domain.AuctionView, error) {
	const op = "Auctions.SubmitBid"

	board, err := s.openBoard(ctx, productID)
	if err != nil {
		return domain.AuctionView{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := board.Submit(ctx, bidderID, amount); err != nil {
		return board.View(), fmt.Errorf("%s: %w", op, err)
	}
	return board.View(), nil
}

// openBoard returns the board of productID, loading the auction on first use.
// A board nobody polls is refreshed on every open.
func (s Auctions) openBoard(
	ctx context.Context, productID string,
) (*BidBoard, error) {
	r := s.boards
	r.mu.Lock()
	board, ok := r.boards[productID]
	running := r.ctx != nil
	r.mu.Unlock()

	if ok {
		board.Tick()
		if running && !board.Ended() {
			return board, nil
		}
		if err := board.Refresh(ctx); err != nil {
			return nil, err
		}
		return board, nil
	}

	auction, err := s.storage.ReadAuction(ctx, productID)
	if err != nil {
		return nil, err
	}
	board = NewBidBoard(auction, s.placer, s.lister, s.now)
	if err := board.Refresh(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.boards[productID]; ok {
		return cached, nil
	}
	r.boards[productID] = board
	if r.ctx != nil {
		go board.Run(r.ctx, r.poll)
	}
	return board, nil
}
