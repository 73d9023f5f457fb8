package orders_test

import (
	"context"
	"sync"
	"testing"

	"retailer/db"
	"retailer/entities"
	"retailer/orders"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publisherMock struct {
	lock                sync.Mutex
	createOrderRequests []entities.CreateOrderRequest
	statusUpdates       []entities.OrderStatusUpdated
	publishErr          error
}

func (p *publisherMock) PublishCreateOrderRequest(ctx context.Context, m entities.CreateOrderRequest) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.publishErr != nil {
		return p.publishErr
	}
	p.createOrderRequests = append(p.createOrderRequests, m)
	return nil
}

func (p *publisherMock) PublishOrderStatusUpdated(ctx context.Context, m entities.OrderStatusUpdated) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.publishErr != nil {
		return p.publishErr
	}
	p.statusUpdates = append(p.statusUpdates, m)
	return nil
}

func newIntakeFixture(t *testing.T, stock int) (orders.IntakeService, *publisherMock, entities.Customer, entities.Product) {
	t.Helper()

	customerRepo := db.NewCustomerRepositoryMock()
	productRepo := db.NewProductRepositoryMock()
	publisher := &publisherMock{}

	customer := entities.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Grace",
		Surname:    "Hopper",
		Email:      "grace@example.com",
	}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	product := entities.Product{
		ProductID:      uuid.NewString(),
		ProductName:    "Compiler Handbook",
		PriceCents:     4999,
		StockAvailable: stock,
	}
	require.NoError(t, productRepo.Create(context.Background(), product))

	return orders.NewIntakeService(customerRepo, productRepo, publisher), publisher, customer, product
}

func TestPlaceOrder(t *testing.T) {
	svc, publisher, customer, product := newIntakeFixture(t, 10)

	ack, err := svc.PlaceOrder(context.Background(), orders.PlaceOrderRequest{
		CustomerID: customer.CustomerID,
		ProductID:  product.ProductID,
		Quantity:   3,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ack.OrderID)
	assert.Equal(t, "Order request submitted for processing", ack.Message)

	require.Len(t, publisher.createOrderRequests, 1)
	msg := publisher.createOrderRequests[0]
	assert.Equal(t, ack.OrderID, msg.OrderID)
	assert.Equal(t, customer.CustomerID, msg.CustomerID)
	assert.Equal(t, "Grace Hopper", msg.CustomerName)
	assert.Equal(t, product.ProductID, msg.ProductID)
	assert.Equal(t, "Compiler Handbook", msg.ProductName)
	assert.Equal(t, 3, msg.Quantity)
	assert.Equal(t, int64(4999), msg.UnitPriceCents)
	assert.Equal(t, 10, msg.StockAvailable)
	assert.Equal(t, int64(1), msg.ProductVersion)
}

func TestPlaceOrderQuantityTooSmall(t *testing.T) {
	svc, publisher, customer, product := newIntakeFixture(t, 10)

	_, err := svc.PlaceOrder(context.Background(), orders.PlaceOrderRequest{
		CustomerID: customer.CustomerID,
		ProductID:  product.ProductID,
		Quantity:   0,
	})
	assert.ErrorIs(t, err, entities.ErrValidation)
	assert.Empty(t, publisher.createOrderRequests)
}

func TestPlaceOrderUnknownCustomer(t *testing.T) {
	svc, publisher, _, product := newIntakeFixture(t, 10)

	_, err := svc.PlaceOrder(context.Background(), orders.PlaceOrderRequest{
		CustomerID: uuid.NewString(),
		ProductID:  product.ProductID,
		Quantity:   1,
	})
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Empty(t, publisher.createOrderRequests)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	svc, publisher, customer, _ := newIntakeFixture(t, 10)

	_, err := svc.PlaceOrder(context.Background(), orders.PlaceOrderRequest{
		CustomerID: customer.CustomerID,
		ProductID:  uuid.NewString(),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Empty(t, publisher.createOrderRequests)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, publisher, customer, product := newIntakeFixture(t, 2)

	_, err := svc.PlaceOrder(context.Background(), orders.PlaceOrderRequest{
		CustomerID: customer.CustomerID,
		ProductID:  product.ProductID,
		Quantity:   5,
	})
	assert.ErrorIs(t, err, entities.ErrInsufficientStock)

	// rejection leaves no trace: no message, unchanged stock
	assert.Empty(t, publisher.createOrderRequests)
}
