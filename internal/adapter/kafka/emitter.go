package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
)

var _ port.BidEventsProducer = (*BidsEmitter)(nil)

// A BidsEmitter publishes placed bids keyed by product id,
// so the summary processor sees every bid of a product in one partition.
type BidsEmitter struct {
	ge *goka.Emitter
}

func NewBidsEmitter(
	seedBrokers []string,
	topic string,
	bidPlacedSerde Serde,
	opts ...goka.EmitterOption,
) (BidsEmitter, error) {
	const op = "NewBidsEmitter"

	ge, err := goka.NewEmitter(
		seedBrokers,
		goka.Stream(topic),
		newBidPlacedCodec(bidPlacedSerde),
		opts...,
	)
	if err != nil {
		return BidsEmitter{}, opErr(err, op)
	}
	return BidsEmitter{ge}, nil
}

func (e BidsEmitter) ProduceBid(ctx context.Context, b domain.Bid) error {
	const op = "BidsEmitter.ProduceBid"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	if err := e.ge.EmitSync(b.ProductID, bidToSchemaV1(b)); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (e BidsEmitter) Close() {
	const op = "BidsEmitter.Close"
	log := slog.With("op", op)

	log.Info("closing emitter...")
	if err := e.ge.Finish(); err != nil {
		log.Error("failed to finish gracefully", "err", err)
		return
	}
	log.Info("emitter is closed")
}
