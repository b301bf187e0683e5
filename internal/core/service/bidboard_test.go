package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAuction() domain.Auction {
	return domain.Auction{
		ProductID:     "p1",
		StartingPrice: 10,
		EndTime:       testNow.Add(time.Hour),
	}
}

func fixedNow() time.Time { return testNow }

func TestBidBoardSubmit(t *testing.T) {
	existing := []domain.Bid{
		{ID: "b2", ProductID: "p1", Amount: 30},
		{ID: "b1", ProductID: "p1", Amount: 20},
	}

	t.Run("TooLowNeverCallsPlacer", func(t *testing.T) {
		placer := new(MockBidPlacer)
		lister := new(MockBidLister)
		lister.On("ListBids", mock.Anything, "p1").Return(existing, nil)

		board := NewBidBoard(testAuction(), placer, lister, fixedNow)
		require.NoError(t, board.Refresh(t.Context()))

		for _, amount := range []float64{30, 25, 0} {
			_, err := board.Submit(t.Context(), "u1", amount)
			require.ErrorIs(t, err, domain.ErrBidTooLow)
		}

		assert.Equal(t, existing, board.View().Bids)
		placer.AssertNotCalled(t, "PlaceBid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ComparedInCents", func(t *testing.T) {
		placed := domain.Bid{ID: "b3", ProductID: "p1", BidderID: "u1", Amount: 30.01}
		placer := new(MockBidPlacer)
		placer.On("PlaceBid", mock.Anything, "p1", "u1", 30.01).Return(placed, nil)
		lister := new(MockBidLister)
		lister.On("ListBids", mock.Anything, "p1").Return(existing, nil)

		board := NewBidBoard(testAuction(), placer, lister, fixedNow)
		require.NoError(t, board.Refresh(t.Context()))

		_, err := board.Submit(t.Context(), "u1", 30.004)
		require.ErrorIs(t, err, domain.ErrBidTooLow)

		b, err := board.Submit(t.Context(), "u1", 30.006)
		require.NoError(t, err)
		assert.Equal(t, placed, b)
		placer.AssertNumberOfCalls(t, "PlaceBid", 1)
	})

	t.Run("StartingPriceIsFloor", func(t *testing.T) {
		placer := new(MockBidPlacer)
		board := NewBidBoard(testAuction(), placer, nil, fixedNow)

		_, err := board.Submit(t.Context(), "u1", 10)
		require.ErrorIs(t, err, domain.ErrBidTooLow)
		placer.AssertNotCalled(t, "PlaceBid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("OptimisticAppend", func(t *testing.T) {
		placed := domain.Bid{ID: "b3", ProductID: "p1", BidderID: "u1", Amount: 31}
		placer := new(MockBidPlacer)
		placer.On("PlaceBid", mock.Anything, "p1", "u1", 31.0).Return(placed, nil)
		lister := new(MockBidLister)
		lister.On("ListBids", mock.Anything, "p1").Return(existing, nil)

		board := NewBidBoard(testAuction(), placer, lister, fixedNow)
		require.NoError(t, board.Refresh(t.Context()))

		b, err := board.Submit(t.Context(), "u1", 31)
		require.NoError(t, err)
		assert.Equal(t, placed, b)

		view := board.View()
		require.Len(t, view.Bids, 3)
		assert.Equal(t, placed, view.Bids[0])
		assert.Equal(t, 31.0, view.Highest)
		lister.AssertNumberOfCalls(t, "ListBids", 1)
	})

	t.Run("PlacerFailureKeepsList", func(t *testing.T) {
		placer := new(MockBidPlacer)
		placer.On("PlaceBid", mock.Anything, "p1", "u1", 50.0).
			Return(domain.Bid{}, errStorage)

		board := NewBidBoard(testAuction(), placer, nil, fixedNow)
		_, err := board.Submit(t.Context(), "u1", 50)
		require.ErrorIs(t, err, errStorage)
		assert.Empty(t, board.View().Bids)
	})

	t.Run("Ended", func(t *testing.T) {
		now := testNow
		placer := new(MockBidPlacer)
		board := NewBidBoard(testAuction(), placer, nil, func() time.Time { return now })

		view := board.View()
		assert.False(t, view.Ended)
		assert.Equal(t, time.Hour, view.Remaining)

		now = testNow.Add(time.Hour)
		board.Tick()
		view = board.View()
		assert.True(t, view.Ended)
		assert.Zero(t, view.Remaining)

		_, err := board.Submit(t.Context(), "u1", 1000)
		require.ErrorIs(t, err, domain.ErrAuctionEnded)
		placer.AssertNotCalled(t, "PlaceBid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

type countingLister struct {
	calls atomic.Int32
	bids  []domain.Bid
}

func (l *countingLister) ListBids(
	ctx context.Context, productID string,
) ([]domain.Bid, error) {
	l.calls.Add(1)
	return l.bids, nil
}

func TestBidBoardRunPolls(t *testing.T) {
	lister := &countingLister{bids: []domain.Bid{{ID: "b1", Amount: 42}}}
	board := NewBidBoard(testAuction(), nil, lister, fixedNow)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		board.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return lister.calls.Load() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, 42.0, board.View().Highest)
}

func TestBidBoardRunStopsWhenEnded(t *testing.T) {
	lister := &countingLister{bids: []domain.Bid{{ID: "b1", Amount: 42}}}
	afterEnd := func() time.Time { return testNow.Add(2 * time.Hour) }
	board := NewBidBoard(testAuction(), nil, lister, afterEnd)

	done := make(chan struct{})
	go func() {
		board.Run(t.Context(), time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not return for an ended auction")
	}
	assert.EqualValues(t, 1, lister.calls.Load())
	assert.True(t, board.View().Ended)
	assert.Equal(t, 42.0, board.View().Highest)
}

func TestAuctionsRunReusesBoard(t *testing.T) {
	storage := new(MockAuctionsStorage)
	storage.On("ReadAuction", mock.Anything, "p1").Return(testAuction(), nil)
	lister := &countingLister{bids: []domain.Bid{{ID: "b1", Amount: 20}}}
	placer := new(MockBidPlacer)
	placer.On("PlaceBid", mock.Anything, "p1", "u1", 25.0).
		Return(domain.Bid{ID: "b2", Amount: 25}, nil)

	s := NewAuctions(storage, placer, lister)
	s.now = fixedNow

	ctx, cancel := context.WithCancel(t.Context())
	stopped := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond)
		close(stopped)
	}()

	_, err := s.ViewAuction(t.Context(), "p1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return lister.calls.Load() >= 3
	}, time.Second, time.Millisecond)

	_, err = s.SubmitBid(t.Context(), "p1", "u1", 25)
	require.NoError(t, err)
	placer.AssertNumberOfCalls(t, "PlaceBid", 1)

	_, err = s.ViewAuction(t.Context(), "p1")
	require.NoError(t, err)
	storage.AssertNumberOfCalls(t, "ReadAuction", 1)

	cancel()
	<-stopped
}

func TestAuctions(t *testing.T) {
	storage := new(MockAuctionsStorage)
	storage.On("ReadAuction", mock.Anything, "p1").Return(testAuction(), nil)
	storage.On("ReadAuction", mock.Anything, "missing").
		Return(domain.Auction{}, domain.ErrAuctionNotFound)

	lister := new(MockBidLister)
	lister.On("ListBids", mock.Anything, "p1").
		Return([]domain.Bid{{ID: "b1", Amount: 20}}, nil)

	placer := new(MockBidPlacer)
	placer.On("PlaceBid", mock.Anything, "p1", "u1", 25.0).
		Return(domain.Bid{ID: "b2", Amount: 25}, nil)

	s := NewAuctions(storage, placer, lister)
	s.now = fixedNow

	t.Run("View", func(t *testing.T) {
		view, err := s.ViewAuction(t.Context(), "p1")
		require.NoError(t, err)
		assert.Equal(t, 20.0, view.Highest)
		assert.Equal(t, time.Hour, view.Remaining)
		assert.False(t, view.Ended)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.ViewAuction(t.Context(), "missing")
		require.ErrorIs(t, err, domain.ErrAuctionNotFound)
	})

	t.Run("SubmitTooLow", func(t *testing.T) {
		view, err := s.SubmitBid(t.Context(), "p1", "u1", 20)
		require.ErrorIs(t, err, domain.ErrBidTooLow)
		assert.Len(t, view.Bids, 1)
	})

	t.Run("Submit", func(t *testing.T) {
		view, err := s.SubmitBid(t.Context(), "p1", "u1", 25)
		require.NoError(t, err)
		assert.Equal(t, 25.0, view.Highest)
		assert.Len(t, view.Bids, 2)
	})
}
