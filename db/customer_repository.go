package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"retailer/entities"
)

type ICustomerRepository interface {
	Create(ctx context.Context, customer entities.Customer) error
	GetByID(ctx context.Context, customerID string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
	Update(ctx context.Context, customer entities.Customer) (entities.Customer, error)
	Delete(ctx context.Context, customerID string) error
}

type CustomerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) CustomerRepository {
	if db == nil {
		panic("db is nil")
	}
	return CustomerRepository{
		db: db,
	}
}

func (cr CustomerRepository) Create(ctx context.Context, customer entities.Customer) error {
	_, err := cr.db.Conn.NamedExecContext(
		ctx,
		`
		INSERT INTO
			customers (customer_id, name, surname, username, email, shipping_address)
		VALUES
			(:customer_id, :name, :surname, :username, :email, :shipping_address)`,
		customer,
	)
	if isErrorUniqueViolation(err) {
		return fmt.Errorf("customer %s already exists: %w", customer.CustomerID, entities.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("could not save customer: %w", err)
	}
	return nil
}

func (cr CustomerRepository) GetByID(ctx context.Context, customerID string) (entities.Customer, error) {
	var customer entities.Customer
	err := cr.db.Conn.GetContext(ctx, &customer, `
		SELECT
			customer_id, name, surname, username, email, shipping_address, version
		FROM
			customers
		WHERE
			customer_id = $1
	`, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Customer{}, fmt.Errorf("customer %s: %w", customerID, entities.ErrNotFound)
	}
	if err != nil {
		return entities.Customer{}, fmt.Errorf("could not get customer: %w", err)
	}

	return customer, nil
}

func (cr CustomerRepository) List(ctx context.Context) ([]entities.Customer, error) {
	var customers []entities.Customer
	err := cr.db.Conn.SelectContext(ctx, &customers, `
		SELECT
			customer_id, name, surname, username, email, shipping_address, version
		FROM
			customers
		ORDER BY
			name, surname
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list customers: %w", err)
	}

	return customers, nil
}

func (cr CustomerRepository) Update(ctx context.Context, customer entities.Customer) (entities.Customer, error) {
	var updated entities.Customer
	err := cr.db.Conn.GetContext(ctx, &updated, `
		UPDATE customers
		SET
			name = $1,
			surname = $2,
			username = $3,
			email = $4,
			shipping_address = $5,
			version = version + 1
		WHERE
			customer_id = $6 AND version = $7
		RETURNING
			customer_id, name, surname, username, email, shipping_address, version
	`, customer.Name, customer.Surname, customer.Username, customer.Email,
		customer.ShippingAddress, customer.CustomerID, customer.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Customer{}, cr.notFoundOrConflict(ctx, customer.CustomerID)
	}
	if err != nil {
		return entities.Customer{}, fmt.Errorf("could not update customer: %w", err)
	}

	return updated, nil
}

func (cr CustomerRepository) Delete(ctx context.Context, customerID string) error {
	_, err := cr.db.Conn.ExecContext(ctx,
		`DELETE FROM customers WHERE customer_id = $1`,
		customerID)
	if err != nil {
		return fmt.Errorf("could not delete customer: %w", err)
	}
	return nil
}

func (cr CustomerRepository) notFoundOrConflict(ctx context.Context, customerID string) error {
	var exists bool
	err := cr.db.Conn.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM customers WHERE customer_id = $1)`, customerID)
	if err != nil {
		return fmt.Errorf("could not check if customer exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("customer %s: %w", customerID, entities.ErrNotFound)
	}
	return fmt.Errorf("customer %s was modified concurrently: %w", customerID, entities.ErrConflict)
}
