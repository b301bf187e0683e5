package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
	"github.com/niksmo/marketplace/pkg/schema"
)

var _ port.BidSummaryReader = (*BidSummaryView)(nil)

// A BidSummaryView serves lookups over the bid summary group table.
type BidSummaryView struct {
	gv *goka.View
}

func NewBidSummaryView(
	seedBrokers []string, groupTable string, opts ...goka.ViewOption,
) (BidSummaryView, error) {
	const op = "NewBidSummaryView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		newBidSummaryCodec(),
		opts...,
	)
	if err != nil {
		return BidSummaryView{}, opErr(err, op)
	}

	return BidSummaryView{gv}, nil
}

func (v BidSummaryView) Run(ctx context.Context) {
	const op = "BidSummaryView.Run"
	log := slog.With("op", op)

	log.Info("running")
	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
		return
	}
	log.Info("stopped")
}

// BidSummary returns an empty summary for products without bids.
func (v BidSummaryView) BidSummary(
	ctx context.Context, productID string,
) (domain.BidSummary, error) {
	const op = "BidSummaryView.BidSummary"

	if err := ctx.Err(); err != nil {
		return domain.BidSummary{}, opErr(err, op)
	}

	value, err := v.gv.Get(productID)
	if err != nil {
		return domain.BidSummary{}, opErr(err, op)
	}

	if value == nil {
		return domain.BidSummary{ProductID: productID}, nil
	}

	s, ok := value.(schema.BidSummaryV1)
	if !ok {
		return domain.BidSummary{}, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, value), op,
		)
	}
	return schemaV1ToSummary(s), nil
}
