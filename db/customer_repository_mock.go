package db

import (
	"context"
	"fmt"
	"sync"

	"retailer/entities"
)

type CustomerRepositoryMock struct {
	lock      sync.Mutex
	customers map[string]entities.Customer
}

func NewCustomerRepositoryMock() *CustomerRepositoryMock {
	return &CustomerRepositoryMock{
		customers: map[string]entities.Customer{},
	}
}

func (cr *CustomerRepositoryMock) Create(ctx context.Context, customer entities.Customer) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if _, ok := cr.customers[customer.CustomerID]; ok {
		return fmt.Errorf("customer %s already exists: %w", customer.CustomerID, entities.ErrConflict)
	}
	customer.Version = 1
	cr.customers[customer.CustomerID] = customer
	return nil
}

func (cr *CustomerRepositoryMock) GetByID(ctx context.Context, customerID string) (entities.Customer, error) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	customer, ok := cr.customers[customerID]
	if !ok {
		return entities.Customer{}, fmt.Errorf("customer %s: %w", customerID, entities.ErrNotFound)
	}
	return customer, nil
}

func (cr *CustomerRepositoryMock) List(ctx context.Context) ([]entities.Customer, error) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	customers := make([]entities.Customer, 0, len(cr.customers))
	for _, c := range cr.customers {
		customers = append(customers, c)
	}
	return customers, nil
}

func (cr *CustomerRepositoryMock) Update(ctx context.Context, customer entities.Customer) (entities.Customer, error) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	stored, ok := cr.customers[customer.CustomerID]
	if !ok {
		return entities.Customer{}, fmt.Errorf("customer %s: %w", customer.CustomerID, entities.ErrNotFound)
	}
	if stored.Version != customer.Version {
		return entities.Customer{}, fmt.Errorf("customer %s was modified concurrently: %w", customer.CustomerID, entities.ErrConflict)
	}
	customer.Version = stored.Version + 1
	cr.customers[customer.CustomerID] = customer
	return customer, nil
}

func (cr *CustomerRepositoryMock) Delete(ctx context.Context, customerID string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	delete(cr.customers, customerID)
	return nil
}
