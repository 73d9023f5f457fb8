package db

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"retailer/entities"
)

type OrderRepositoryMock struct {
	lock   sync.Mutex
	orders map[string]entities.Order
}

func NewOrderRepositoryMock() *OrderRepositoryMock {
	return &OrderRepositoryMock{
		orders: map[string]entities.Order{},
	}
}

func (or *OrderRepositoryMock) CreateIfAbsent(ctx context.Context, order entities.Order) (bool, error) {
	or.lock.Lock()
	defer or.lock.Unlock()

	if _, ok := or.orders[order.OrderID]; ok {
		return false, nil
	}
	order.Version = 1
	or.orders[order.OrderID] = order
	return true, nil
}

func (or *OrderRepositoryMock) GetByID(ctx context.Context, orderID string) (entities.Order, error) {
	or.lock.Lock()
	defer or.lock.Unlock()

	order, ok := or.orders[orderID]
	if !ok {
		return entities.Order{}, fmt.Errorf("order %s: %w", orderID, entities.ErrNotFound)
	}
	return order, nil
}

func (or *OrderRepositoryMock) List(ctx context.Context) ([]entities.Order, error) {
	or.lock.Lock()
	defer or.lock.Unlock()

	orders := make([]entities.Order, 0, len(or.orders))
	for _, o := range or.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDateUTC.After(orders[j].OrderDateUTC)
	})
	return orders, nil
}

func (or *OrderRepositoryMock) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus, version int64) (entities.Order, error) {
	or.lock.Lock()
	defer or.lock.Unlock()

	stored, ok := or.orders[orderID]
	if !ok {
		return entities.Order{}, fmt.Errorf("order %s: %w", orderID, entities.ErrNotFound)
	}
	if stored.Version != version {
		return entities.Order{}, fmt.Errorf("order %s was modified concurrently: %w", orderID, entities.ErrConflict)
	}
	stored.Status = status
	stored.Version++
	or.orders[orderID] = stored
	return stored, nil
}

func (or *OrderRepositoryMock) Delete(ctx context.Context, orderID string) error {
	or.lock.Lock()
	defer or.lock.Unlock()

	delete(or.orders, orderID)
	return nil
}
