package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
	"github.com/niksmo/marketplace/pkg/retry"
)

var _ port.ShipmentsMailer = (*Notifications)(nil)

type Notifications struct {
	mailer   port.Mailer
	retryCfg retry.RetryConfig
}

func NewNotifications(mailer port.Mailer) Notifications {
	return Notifications{
		mailer: mailer,
		retryCfg: retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.LinearBackoff(500 * time.Millisecond),
		},
	}
}

// MailShipments sends one email per notice.
// Every notice is attempted, failures are joined.
func (s Notifications) MailShipments(
	ctx context.Context, notices []domain.ShipmentNotice,
) error {
	const op = "Notifications.MailShipments"
	log := slog.With("op", op)

	var errs []error
	for _, n := range notices {
		err := retry.Do(ctx, s.retryCfg, func() error {
			return s.mailer.SendShipmentEmail(ctx, n)
		})
		if err != nil {
			log.Error("failed to mail shipment", "orderID", n.OrderID, "err", err)
			errs = append(errs, fmt.Errorf("order %q: %w", n.OrderID, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
