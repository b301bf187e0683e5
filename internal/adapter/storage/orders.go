package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
)

var _ port.OrdersStorage = (*OrdersRepository)(nil)

type orderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

const orderColumns = `
	order_id, status, tracking_number, items, total,
	customer_name, customer_email, updated_at`

type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

func (r OrdersRepository) ReadOrder(
	ctx context.Context, orderID string,
) (domain.Order, error) {
	const op = "OrdersRepository.ReadOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT` + orderColumns + ` FROM orders WHERE order_id = $1;`

	o, err := scanOrder(r.sqldb.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrOrderNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (r OrdersRepository) UpdateOrderStatus(
	ctx context.Context, orderID string, status domain.OrderStatus, at time.Time,
) (domain.Order, error) {
	const op = "OrdersRepository.UpdateOrderStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE orders SET status = $2, updated_at = $3
		WHERE order_id = $1
		RETURNING` + orderColumns + `;`

	o, err := scanOrder(r.sqldb.QueryRowContext(ctx, query, orderID, string(status), at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrOrderNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

// ShipOrder writes the shipped status with the tracking number
// only while the order has none.
func (r OrdersRepository) ShipOrder(
	ctx context.Context, orderID, trackingNumber string, at time.Time,
) (domain.Order, bool, error) {
	const op = "OrdersRepository.ShipOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, false, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE orders SET status = $2, tracking_number = $3, updated_at = $4
		WHERE order_id = $1
			AND (tracking_number IS NULL OR tracking_number = '')
		RETURNING` + orderColumns + `;`

	row := r.sqldb.QueryRowContext(
		ctx, query, orderID, string(domain.StatusShipped), trackingNumber, at,
	)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, false, nil
		}
		return domain.Order{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return o, true, nil
}

func scanOrder(row *sql.Row) (domain.Order, error) {
	var (
		o        domain.Order
		status   string
		tracking sql.NullString
		items    []byte
	)
	err := row.Scan(
		&o.ID, &status, &tracking, &items, &o.Total,
		&o.Customer.Name, &o.Customer.Email, &o.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}

	o.Status = domain.OrderStatus(status)
	o.TrackingNumber = tracking.String

	var vs []orderItem
	if err := json.Unmarshal(items, &vs); err != nil {
		return domain.Order{}, fmt.Errorf("failed to decode items: %w", err)
	}
	o.Items = make([]domain.OrderItem, len(vs))
	for i, v := range vs {
		o.Items[i] = domain.OrderItem(v)
	}
	return o, nil
}
