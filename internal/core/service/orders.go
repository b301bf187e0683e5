package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
	"github.com/niksmo/marketplace/pkg/retry"
)

const notifyTimeout = 30 * time.Second

var _ port.OrderStatusUpdater = (*Orders)(nil)

// Orders applies order status transitions.
//
// The first transition into shipped mints a tracking number
// and notifies the customer in the background.
type Orders struct {
	storage     port.OrdersStorage
	tracking    port.TrackingGenerator
	notifier    port.ShipmentNotifier
	notifyRetry retry.RetryConfig
	now         func() time.Time
	wg          *sync.WaitGroup
}

func NewOrders(
	storage port.OrdersStorage,
	tracking port.TrackingGenerator,
	notifier port.ShipmentNotifier,
) Orders {
	return Orders{
		storage:  storage,
		tracking: tracking,
		notifier: notifier,
		notifyRetry: retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
		},
		now: time.Now,
		wg:  new(sync.WaitGroup),
	}
}

func (s Orders) UpdateStatus(
	ctx context.Context, orderID, rawStatus string,
) (domain.Order, error) {
	const op = "Orders.UpdateStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if status == domain.StatusShipped {
		o, err := s.ship(ctx, orderID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("%s: %w", op, err)
		}
		return o, nil
	}

	o, err := s.storage.UpdateOrderStatus(ctx, orderID, status, s.now())
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

// Wait blocks until all background notifications are done or ctx is done.
// Notifications still running when ctx is done are left to their own timeout.
func (s Orders) Wait(ctx context.Context) error {
	const op = "Orders.Wait"

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

func (s Orders) ship(ctx context.Context, orderID string) (domain.Order, error) {
	const op = "Orders.ship"

	current, err := s.storage.ReadOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if current.HasTrackingNumber() {
		return s.shipStatusOnly(ctx, orderID)
	}

	trackingNumber, err := s.tracking.NewTrackingNumber()
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	shipped, assigned, err := s.storage.ShipOrder(
		ctx, orderID, trackingNumber, s.now(),
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	// tracking number was assigned by a concurrent request
	if !assigned {
		return s.shipStatusOnly(ctx, orderID)
	}

	s.notifyAsync(ctx, shipped)
	return shipped, nil
}

func (s Orders) shipStatusOnly(
	ctx context.Context, orderID string,
) (domain.Order, error) {
	const op = "Orders.shipStatusOnly"

	o, err := s.storage.UpdateOrderStatus(
		ctx, orderID, domain.StatusShipped, s.now(),
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (s Orders) notifyAsync(ctx context.Context, o domain.Order) {
	const op = "Orders.notifyAsync"
	log := slog.With(
		"op", op, "orderID", o.ID, "trackingNumber", o.TrackingNumber,
	)

	notice := domain.NewShipmentNotice(o)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		err := retry.Do(ctx, s.notifyRetry, func() error {
			return s.notifier.NotifyShipped(ctx, notice)
		})
		if err != nil {
			log.Error("failed to notify shipment", "err", err)
			return
		}
		log.Info("shipment notification sent")
	}()
}
