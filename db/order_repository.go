package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"retailer/entities"
)

type IOrderRepository interface {
	CreateIfAbsent(ctx context.Context, order entities.Order) (bool, error)
	GetByID(ctx context.Context, orderID string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus, version int64) (entities.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) OrderRepository {
	if db == nil {
		panic("db is nil")
	}
	return OrderRepository{
		db: db,
	}
}

// CreateIfAbsent inserts the order and reports whether a row was written.
// A false result means the order id was already present, which under
// at-least-once delivery marks a redelivered message.
func (or OrderRepository) CreateIfAbsent(ctx context.Context, order entities.Order) (bool, error) {
	res, err := or.db.Conn.NamedExecContext(
		ctx,
		`
		INSERT INTO
			orders (order_id, customer_id, product_id, product_name, quantity, unit_price_cents, order_date_utc, status)
		VALUES
			(:order_id, :customer_id, :product_id, :product_name, :quantity, :unit_price_cents, :order_date_utc, :status)
		ON CONFLICT (order_id) DO NOTHING`,
		order,
	)
	if err != nil {
		return false, fmt.Errorf("could not save order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not check order insert result: %w", err)
	}

	return affected == 1, nil
}

func (or OrderRepository) GetByID(ctx context.Context, orderID string) (entities.Order, error) {
	var order entities.Order
	err := or.db.Conn.GetContext(ctx, &order, `
		SELECT
			order_id, customer_id, product_id, product_name, quantity, unit_price_cents, order_date_utc, status, version
		FROM
			orders
		WHERE
			order_id = $1
	`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, fmt.Errorf("order %s: %w", orderID, entities.ErrNotFound)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not get order: %w", err)
	}

	return order, nil
}

func (or OrderRepository) List(ctx context.Context) ([]entities.Order, error) {
	var orders []entities.Order
	err := or.db.Conn.SelectContext(ctx, &orders, `
		SELECT
			order_id, customer_id, product_id, product_name, quantity, unit_price_cents, order_date_utc, status, version
		FROM
			orders
		ORDER BY
			order_date_utc DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus writes the new status if version still matches the stored row
// and returns the updated order. A stale version is surfaced as a conflict
// the caller may retry; the stored status stays unchanged.
func (or OrderRepository) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus, version int64) (entities.Order, error) {
	var updated entities.Order
	err := or.db.Conn.GetContext(ctx, &updated, `
		UPDATE orders
		SET
			status = $1,
			version = version + 1
		WHERE
			order_id = $2 AND version = $3
		RETURNING
			order_id, customer_id, product_id, product_name, quantity, unit_price_cents, order_date_utc, status, version
	`, status, orderID, version)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, or.notFoundOrConflict(ctx, orderID)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not update order status: %w", err)
	}

	return updated, nil
}

func (or OrderRepository) Delete(ctx context.Context, orderID string) error {
	_, err := or.db.Conn.ExecContext(ctx,
		`DELETE FROM orders WHERE order_id = $1`,
		orderID)
	if err != nil {
		return fmt.Errorf("could not delete order: %w", err)
	}
	return nil
}

func (or OrderRepository) notFoundOrConflict(ctx context.Context, orderID string) error {
	var exists bool
	err := or.db.Conn.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, orderID)
	if err != nil {
		return fmt.Errorf("could not check if order exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("order %s: %w", orderID, entities.ErrNotFound)
	}
	return fmt.Errorf("order %s was modified concurrently: %w", orderID, entities.ErrConflict)
}
