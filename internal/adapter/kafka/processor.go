package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hamba/avro/v2"
	"github.com/lovoo/goka"
	"github.com/niksmo/marketplace/internal/core/port"
	"github.com/niksmo/marketplace/pkg/schema"
)

var _ port.BidSummaryProcessor = (*BidSummaryProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A bidPlacedCodec used for serde [schema.BidPlacedV1]
type bidPlacedCodec struct {
	serde Serde
}

func newBidPlacedCodec(s Serde) bidPlacedCodec {
	return bidPlacedCodec{s}
}

func (c bidPlacedCodec) Encode(v any) ([]byte, error) {
	const op = "bidPlacedCodec.Encode"
	if _, ok := v.(schema.BidPlacedV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c bidPlacedCodec) Decode(data []byte) (any, error) {
	const op = "bidPlacedCodec.Decode"
	var s schema.BidPlacedV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A bidSummaryCodec used for serde [schema.BidSummaryV1] group table values.
type bidSummaryCodec struct {
	avroSchema avro.Schema
}

func newBidSummaryCodec() bidSummaryCodec {
	return bidSummaryCodec{schema.BidSummaryV1Avro()}
}

func (c bidSummaryCodec) Encode(v any) ([]byte, error) {
	const op = "bidSummaryCodec.Encode"
	s, ok := v.(schema.BidSummaryV1)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data, err := avro.Marshal(c.avroSchema, s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return data, nil
}

func (c bidSummaryCodec) Decode(data []byte) (any, error) {
	const op = "bidSummaryCodec.Decode"
	var s schema.BidSummaryV1
	if err := avro.Unmarshal(c.avroSchema, data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A BidSummaryProcessor folds placed bids from the input stream
// into a per-product summary kept in the group table.
type BidSummaryProcessor struct {
	opPrefix string
	proc     processor
}

func NewBidSummaryProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	bidPlacedSerde Serde,
	opts ...goka.ProcessorOption,
) (*BidSummaryProcessor, error) {
	const op = "NewBidSummaryProc"

	p := BidSummaryProcessor{opPrefix: "BidSummaryProcessor"}

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newBidPlacedCodec(bidPlacedSerde),
			p.processFn,
		),
		goka.Persist(newBidSummaryCodec()),
	)

	opts = append([]goka.ProcessorOption{withNonlogProcOpt()}, opts...)
	gp, err := goka.NewProcessor(seedBrokers, gg, opts...)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *BidSummaryProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *BidSummaryProcessor) Close() {
	p.proc.close()
}

func (p *BidSummaryProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op), "productID", ctx.Key())

	bid, ok := msg.(schema.BidPlacedV1)
	if !ok {
		log.Error("unexpected message", "err", ErrInvalidValueType)
		return
	}

	prev, _ := ctx.Value().(schema.BidSummaryV1)
	next := applyBid(prev, bid)
	ctx.SetValue(next)
	log.Debug("summary updated", "highest", next.Highest, "count", next.Count)
}

func applyBid(
	prev schema.BidSummaryV1, bid schema.BidPlacedV1,
) schema.BidSummaryV1 {
	s := schemaV1ToSummary(prev).Apply(schemaV1ToBid(bid))
	return summaryToSchemaV1(s)
}
