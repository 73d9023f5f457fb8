package orders

import (
	"context"
	"fmt"

	"retailer/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, customerID string) (entities.Customer, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, productID string) (entities.Product, error)
}

type EventPublisher interface {
	PublishCreateOrderRequest(ctx context.Context, m entities.CreateOrderRequest) error
	PublishOrderStatusUpdated(ctx context.Context, m entities.OrderStatusUpdated) error
}

type PlaceOrderRequest struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

type OrderAck struct {
	OrderID    string `json:"order_id"`
	Message    string `json:"message"`
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

// IntakeService validates new-order requests and hands them to the order
// notifications queue. It never mutates the store: the caller gets a
// "request accepted" ack, not "order created".
type IntakeService struct {
	customerRepo CustomerRepository
	productRepo  ProductRepository
	publisher    EventPublisher
}

func NewIntakeService(customerRepo CustomerRepository, productRepo ProductRepository, publisher EventPublisher) IntakeService {
	if customerRepo == nil {
		panic("missing customerRepo")
	}
	if productRepo == nil {
		panic("missing productRepo")
	}
	if publisher == nil {
		panic("missing publisher")
	}
	return IntakeService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		publisher:    publisher,
	}
}

func (s IntakeService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (OrderAck, error) {
	if req.Quantity < 1 {
		return OrderAck{}, fmt.Errorf("quantity must be at least 1: %w", entities.ErrValidation)
	}
	if req.CustomerID == "" || req.ProductID == "" {
		return OrderAck{}, fmt.Errorf("customer id and product id are required: %w", entities.ErrValidation)
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return OrderAck{}, err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return OrderAck{}, err
	}

	if product.StockAvailable < req.Quantity {
		return OrderAck{}, fmt.Errorf("available: %d, requested: %d: %w",
			product.StockAvailable, req.Quantity, entities.ErrInsufficientStock)
	}

	// The order id is minted here and rides the message as the idempotency
	// key; product fields are snapshots of what intake observed.
	orderID := uuid.NewString()
	err = s.publisher.PublishCreateOrderRequest(ctx, entities.CreateOrderRequest{
		OrderID:        orderID,
		CustomerID:     customer.CustomerID,
		CustomerName:   customer.FullName(),
		ProductID:      product.ProductID,
		ProductName:    product.ProductName,
		Quantity:       req.Quantity,
		UnitPriceCents: product.PriceCents,
		StockAvailable: product.StockAvailable,
		ProductVersion: product.Version,
	})
	if err != nil {
		return OrderAck{}, fmt.Errorf("could not publish CreateOrder request: %w", err)
	}

	log.FromContext(ctx).
		WithField("order_id", orderID).
		Info("Order request submitted for processing")

	return OrderAck{
		OrderID:    orderID,
		Message:    "Order request submitted for processing",
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	}, nil
}
