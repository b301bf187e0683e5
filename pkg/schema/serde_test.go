package schema_test

import (
	"context"
	"testing"
	"time"

	"github.com/niksmo/marketplace/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeOrderShippedV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderShippedV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderShippedV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeOrderShippedV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "order-shipped-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderShippedSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeOrderShippedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
		schemaIdentifier.AssertExpectations(t)

		value1 := schema.OrderShippedV1{
			OrderID:        "order-1",
			TrackingNumber: "TRK0123456789AB",
			CustomerName:   "Jane",
			CustomerEmail:  "jane@example.com",
			Items: []schema.OrderItemV1{
				{ProductID: "p1", Name: "Lamp", Quantity: 2, UnitPrice: 19.99},
			},
			Total:     39.98,
			ShippedAt: time.UnixMilli(1760000000123).UTC(),
		}

		encodedData, err := serde.Encode(value1)
		require.NoError(t, err)

		var value2 schema.OrderShippedV1
		err = serde.Decode(encodedData, &value2)
		require.NoError(t, err)

		assert.Equal(t, value1.OrderID, value2.OrderID)
		assert.Equal(t, value1.TrackingNumber, value2.TrackingNumber)
		assert.Equal(t, value1.CustomerEmail, value2.CustomerEmail)
		assert.Equal(t, value1.Items, value2.Items)
		assert.Equal(t, value1.Total, value2.Total)
		assert.True(t, value1.ShippedAt.Equal(value2.ShippedAt))
	})
}

func TestSerdeBidPlacedV1(t *testing.T) {
	schemaIdentifier := new(MockSchemaIdentifier)
	subject := "bids-placed-value"

	schemaIdentifier.On(
		"DetermineID", t.Context(), subject, schema.BidPlacedSchemaTextV1,
	).Return(7, nil)

	serde, err := schema.NewSerdeBidPlacedV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)

	value1 := schema.BidPlacedV1{
		BidID:     "bid-1",
		ProductID: "p1",
		BidderID:  "u1",
		Amount:    120.5,
		PlacedAt:  time.UnixMilli(1760000000000).UTC(),
	}

	encodedData, err := serde.Encode(value1)
	require.NoError(t, err)

	var value2 schema.BidPlacedV1
	require.NoError(t, serde.Decode(encodedData, &value2))
	assert.Equal(t, value1.BidID, value2.BidID)
	assert.Equal(t, value1.Amount, value2.Amount)
	assert.True(t, value1.PlacedAt.Equal(value2.PlacedAt))
}
