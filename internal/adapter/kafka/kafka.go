package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/IBM/sarama"
	"github.com/lovoo/goka"
	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

// A Security holds the optional transport settings shared
// by franz-go clients and goka components.
type Security struct {
	TLSConfig *tls.Config
	User      string
	Pass      string
}

func (s Security) kgoOpts() []kgo.Opt {
	var opts []kgo.Opt
	if s.TLSConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(s.TLSConfig))
	}
	if s.User != "" {
		opts = append(opts, kgo.SASL(plain.Auth{
			User: s.User,
			Pass: s.Pass,
		}.AsMechanism()))
	}
	return opts
}

// ApplyGoka installs s into the global sarama config used by goka.
// It must be called before any goka component is created.
func (s Security) ApplyGoka() {
	cfg := goka.DefaultConfig()
	if s.TLSConfig != nil {
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = s.TLSConfig
	}
	if s.User != "" {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		cfg.Net.SASL.User = s.User
		cfg.Net.SASL.Password = s.Pass
	}
	goka.ReplaceGlobalConfig(cfg)
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func shipmentToSchemaV1(v domain.ShipmentNotice) (s schema.OrderShippedV1) {
	s.OrderID = v.OrderID
	s.TrackingNumber = v.TrackingNumber
	s.CustomerName = v.Customer.Name
	s.CustomerEmail = v.Customer.Email
	s.Total = v.Total
	s.ShippedAt = v.ShippedAt

	s.Items = make([]schema.OrderItemV1, len(v.Items))
	for i, item := range v.Items {
		s.Items[i] = schema.OrderItemV1(item)
	}
	return
}

func schemaV1ToShipment(s schema.OrderShippedV1) (v domain.ShipmentNotice) {
	v.OrderID = s.OrderID
	v.TrackingNumber = s.TrackingNumber
	v.Customer.Name = s.CustomerName
	v.Customer.Email = s.CustomerEmail
	v.Total = s.Total
	v.ShippedAt = s.ShippedAt

	v.Items = make([]domain.OrderItem, len(s.Items))
	for i, item := range s.Items {
		v.Items[i] = domain.OrderItem(item)
	}
	return
}

func bidToSchemaV1(v domain.Bid) schema.BidPlacedV1 {
	return schema.BidPlacedV1{
		BidID:     v.ID,
		ProductID: v.ProductID,
		BidderID:  v.BidderID,
		Amount:    v.Amount,
		PlacedAt:  v.Timestamp,
	}
}

func schemaV1ToBid(s schema.BidPlacedV1) domain.Bid {
	return domain.Bid{
		ID:        s.BidID,
		ProductID: s.ProductID,
		BidderID:  s.BidderID,
		Amount:    s.Amount,
		Timestamp: s.PlacedAt,
	}
}

func summaryToSchemaV1(v domain.BidSummary) schema.BidSummaryV1 {
	return schema.BidSummaryV1(v)
}

func schemaV1ToSummary(s schema.BidSummaryV1) domain.BidSummary {
	return domain.BidSummary(s)
}
