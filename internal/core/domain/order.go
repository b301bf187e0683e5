package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = [...]OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseOrderStatus validates s against the fixed set of statuses.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range orderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

type (
	Order struct {
		ID             string
		Status         OrderStatus
		TrackingNumber string
		Items          []OrderItem
		Total          float64
		Customer       OrderCustomer
		UpdatedAt      time.Time
	}

	OrderItem struct {
		ProductID string
		Name      string
		Quantity  int
		UnitPrice float64
	}

	OrderCustomer struct {
		Name  string
		Email string
	}
)

func (o Order) HasTrackingNumber() bool {
	return o.TrackingNumber != ""
}

// A ShipmentNotice carries what the customer email needs
// after an order first ships.
type ShipmentNotice struct {
	OrderID        string
	TrackingNumber string
	Customer       OrderCustomer
	Items          []OrderItem
	Total          float64
	ShippedAt      time.Time
}

func NewShipmentNotice(o Order) ShipmentNotice {
	return ShipmentNotice{
		OrderID:        o.ID,
		TrackingNumber: o.TrackingNumber,
		Customer:       o.Customer,
		Items:          o.Items,
		Total:          o.Total,
		ShippedAt:      o.UpdatedAt,
	}
}
