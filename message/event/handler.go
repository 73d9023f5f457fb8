package event

import (
	"context"

	"retailer/entities"
)

type OrderRepository interface {
	CreateIfAbsent(ctx context.Context, order entities.Order) (bool, error)
	GetByID(ctx context.Context, orderID string) (entities.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type ProductRepository interface {
	GetByID(ctx context.Context, productID string) (entities.Product, error)
	UpdateStock(ctx context.Context, productID string, stockAvailable int, version int64) error
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, m entities.OrderCreated) error
	ForwardOrderProcessed(ctx context.Context, payload []byte) error
	PublishStockProcessed(ctx context.Context, payload []byte) error
}

type Handler struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	publisher   EventPublisher
}

func NewHandler(orderRepo OrderRepository, productRepo ProductRepository, publisher EventPublisher) Handler {
	if orderRepo == nil {
		panic("missing orderRepo")
	}
	if productRepo == nil {
		panic("missing productRepo")
	}
	if publisher == nil {
		panic("missing publisher")
	}
	return Handler{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}
