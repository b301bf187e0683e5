package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type fakeIdentifier struct{}

func (fakeIdentifier) DetermineID(
	ctx context.Context, subject, schemaText string,
) (int, error) {
	return 1, nil
}

func newOrderShippedSerde(t *testing.T) schema.Serde {
	t.Helper()
	s, err := schema.NewSerdeOrderShippedV1(t.Context(),
		schema.SubjectOpt("order-shipped-value"),
		schema.SchemaIdentifierOpt(fakeIdentifier{}),
	)
	require.NoError(t, err)
	return s
}

func newBidPlacedSerde(t *testing.T) schema.Serde {
	t.Helper()
	s, err := schema.NewSerdeBidPlacedV1(t.Context(),
		schema.SubjectOpt("bids-placed-value"),
		schema.SchemaIdentifierOpt(fakeIdentifier{}),
	)
	require.NoError(t, err)
	return s
}

func testNotice() domain.ShipmentNotice {
	return domain.ShipmentNotice{
		OrderID:        "o1",
		TrackingNumber: "TRK0123456789AB",
		Customer:       domain.OrderCustomer{Name: "Jane", Email: "jane@example.com"},
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Lamp", Quantity: 2, UnitPrice: 19.5},
		},
		Total:     39,
		ShippedAt: testNow,
	}
}

type fakeProducerClient struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (c *fakeProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	c.records = append(c.records, rs...)
	var res kgo.ProduceResults
	for _, r := range rs {
		res = append(res, kgo.ProduceResult{Record: r, Err: c.err})
	}
	return res
}

func (c *fakeProducerClient) Close() { c.closed = true }

func fakeProducerClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		opts.cl = cl
		return nil
	}
}

func TestShipmentProducer(t *testing.T) {
	serde := newOrderShippedSerde(t)
	cl := new(fakeProducerClient)

	p, err := NewShipmentProducer(
		fakeProducerClientOpt(cl), ProducerEncoderOpt(serde),
	)
	require.NoError(t, err)

	require.NoError(t, p.NotifyShipped(t.Context(), testNotice()))
	require.Len(t, cl.records, 1)
	assert.Equal(t, []byte("o1"), cl.records[0].Key)

	var got schema.OrderShippedV1
	require.NoError(t, serde.Decode(cl.records[0].Value, &got))
	notice := schemaV1ToShipment(got)
	assert.True(t, notice.ShippedAt.Equal(testNow))
	notice.ShippedAt = testNow
	assert.Equal(t, testNotice(), notice)

	cl.err = errors.New("not leader")
	require.ErrorIs(t, p.NotifyShipped(t.Context(), testNotice()), cl.err)

	p.Close()
	assert.True(t, cl.closed)
}

func TestNewShipmentProducerRequiresOpts(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewShipmentProducer(ProducerEncoderOpt(newOrderShippedSerde(t)))
	})

	_, err := NewShipmentProducer(fakeProducerClientOpt(nil), ProducerEncoderOpt(nil))
	require.Error(t, err)
}

type fakeConsumerClient struct {
	fetches kgo.Fetches
	commits int
	closed  bool
}

func (c *fakeConsumerClient) PollFetches(ctx context.Context) kgo.Fetches {
	f := c.fetches
	c.fetches = nil
	return f
}

func (c *fakeConsumerClient) CommitUncommittedOffsets(ctx context.Context) error {
	c.commits++
	return nil
}

func (c *fakeConsumerClient) Close() { c.closed = true }

type recordMailer struct {
	got []domain.ShipmentNotice
	err error
}

func (m *recordMailer) MailShipments(
	ctx context.Context, ns []domain.ShipmentNotice,
) error {
	m.got = append(m.got, ns...)
	return m.err
}

func fetchesOf(rs ...*kgo.Record) kgo.Fetches {
	return kgo.Fetches{{
		Topics: []kgo.FetchTopic{{
			Topic:      "order-shipped",
			Partitions: []kgo.FetchPartition{{Partition: 0, Records: rs}},
		}},
	}}
}

func newTestShipmentConsumer(
	t *testing.T, cl ConsumerClient, m *recordMailer,
) ShipmentConsumer {
	t.Helper()
	c, err := NewShipmentConsumer(
		func(co *consumerOpts) error { co.cl = cl; return nil },
		ConsumerDecoderOpt(newOrderShippedSerde(t)),
		ShipmentsMailerOpt(m),
	)
	require.NoError(t, err)
	return c
}

func TestShipmentConsumerConsume(t *testing.T) {
	serde := newOrderShippedSerde(t)
	value, err := serde.Encode(shipmentToSchemaV1(testNotice()))
	require.NoError(t, err)

	t.Run("MailsAndCommits", func(t *testing.T) {
		cl := &fakeConsumerClient{fetches: fetchesOf(
			&kgo.Record{Key: []byte("o1"), Value: value},
			&kgo.Record{Key: []byte("bad"), Value: []byte("garbage")},
		)}
		m := new(recordMailer)
		c := newTestShipmentConsumer(t, cl, m)

		require.NoError(t, c.consumer.consume(t.Context()))
		require.Len(t, m.got, 1)
		assert.Equal(t, "TRK0123456789AB", m.got[0].TrackingNumber)
		assert.Equal(t, 1, cl.commits)
	})

	t.Run("EmptyPoll", func(t *testing.T) {
		cl := new(fakeConsumerClient)
		m := new(recordMailer)
		c := newTestShipmentConsumer(t, cl, m)

		require.NoError(t, c.consumer.consume(t.Context()))
		assert.Empty(t, m.got)
		assert.Zero(t, cl.commits)
	})

	t.Run("MailerFailureSkipsCommit", func(t *testing.T) {
		cl := &fakeConsumerClient{fetches: fetchesOf(
			&kgo.Record{Key: []byte("o1"), Value: value},
		)}
		m := &recordMailer{err: errors.New("smtp down")}
		c := newTestShipmentConsumer(t, cl, m)

		require.ErrorIs(t, c.consumer.consume(t.Context()), m.err)
		assert.Zero(t, cl.commits)

		c.Close()
		assert.True(t, cl.closed)
	})
}

func TestShipmentConsumerRunStops(t *testing.T) {
	c := newTestShipmentConsumer(t, new(fakeConsumerClient), new(recordMailer))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestNewShipmentConsumerRequiresOpts(t *testing.T) {
	_, err := NewShipmentConsumer(ConsumerDecoderOpt(newOrderShippedSerde(t)))
	require.ErrorIs(t, err, ErrTooFewOpts)
}

func TestBidSummaryCodec(t *testing.T) {
	c := newBidSummaryCodec()
	want := schema.BidSummaryV1{
		ProductID: "p1", Highest: 42.5, Count: 3, UpdatedAt: testNow,
	}

	data, err := c.Encode(want)
	require.NoError(t, err)

	got, err := c.Decode(data)
	require.NoError(t, err)
	s := got.(schema.BidSummaryV1)
	assert.True(t, s.UpdatedAt.Equal(testNow))
	s.UpdatedAt = testNow
	assert.Equal(t, want, s)

	_, err = c.Encode("p1")
	require.ErrorIs(t, err, ErrInvalidValueType)
}

func TestApplyBid(t *testing.T) {
	var s schema.BidSummaryV1
	s = applyBid(s, schema.BidPlacedV1{ProductID: "p1", Amount: 20, PlacedAt: testNow})
	s = applyBid(s, schema.BidPlacedV1{ProductID: "p1", Amount: 15, PlacedAt: testNow.Add(time.Minute)})

	assert.Equal(t, "p1", s.ProductID)
	assert.Equal(t, 20.0, s.Highest)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, testNow.Add(time.Minute), s.UpdatedAt)
}

func TestSecurityKgoOpts(t *testing.T) {
	assert.Empty(t, Security{}.kgoOpts())
	assert.Len(t, Security{User: "u", Pass: "p"}.kgoOpts(), 1)
}

func waitGroupDone(wg *sync.WaitGroup) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}
