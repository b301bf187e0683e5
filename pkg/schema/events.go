package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const OrderShippedSchemaTextV1 = `{
	"type": "record",
	"namespace": "orders",
	"name": "order_shipped",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "tracking_number", "type": "string"},
		{"name": "customer_name", "type": "string"},
		{"name": "customer_email", "type": "string"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_item",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "quantity", "type": "long"},
					{"name": "unit_price", "type": "double"}
				]
			}
		}},
		{"name": "total", "type": "double"},
		{"name": "shipped_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

const BidPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "bids",
	"name": "bid_placed",
	"fields": [
		{"name": "bid_id", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "bidder_id", "type": "string"},
		{"name": "amount", "type": "double"},
		{"name": "placed_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

const BidSummarySchemaTextV1 = `{
	"type": "record",
	"namespace": "bids",
	"name": "bid_summary",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "highest", "type": "double"},
		{"name": "count", "type": "long"},
		{"name": "updated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	OrderShippedV1 struct {
		OrderID        string        `avro:"order_id"`
		TrackingNumber string        `avro:"tracking_number"`
		CustomerName   string        `avro:"customer_name"`
		CustomerEmail  string        `avro:"customer_email"`
		Items          []OrderItemV1 `avro:"items"`
		Total          float64       `avro:"total"`
		ShippedAt      time.Time     `avro:"shipped_at"`
	}

	OrderItemV1 struct {
		ProductID string  `avro:"product_id"`
		Name      string  `avro:"name"`
		Quantity  int     `avro:"quantity"`
		UnitPrice float64 `avro:"unit_price"`
	}
)

type BidPlacedV1 struct {
	BidID     string    `avro:"bid_id"`
	ProductID string    `avro:"product_id"`
	BidderID  string    `avro:"bidder_id"`
	Amount    float64   `avro:"amount"`
	PlacedAt  time.Time `avro:"placed_at"`
}

type BidSummaryV1 struct {
	ProductID string    `avro:"product_id"`
	Highest   float64   `avro:"highest"`
	Count     int       `avro:"count"`
	UpdatedAt time.Time `avro:"updated_at"`
}

func OrderShippedV1Avro() avro.Schema {
	return avro.MustParse(OrderShippedSchemaTextV1)
}

func BidPlacedV1Avro() avro.Schema {
	return avro.MustParse(BidPlacedSchemaTextV1)
}

func BidSummaryV1Avro() avro.Schema {
	return avro.MustParse(BidSummarySchemaTextV1)
}
