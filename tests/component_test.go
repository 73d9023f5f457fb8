package tests

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"retailer/db"
	"retailer/entities"
	msgbus "retailer/message"
	"retailer/message/event"

	"github.com/ThreeDotsLabs/watermill"
	wmessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeline struct {
	orderRepo   *db.OrderRepositoryMock
	productRepo *db.ProductRepositoryMock
	publisher   msgbus.Publisher
	pubsub      *gochannel.GoChannel
	topics      msgbus.Topics
	processed   *topicCollector
	stock       *topicCollector
	poison      *topicCollector
}

func startPipeline(t *testing.T, intakeDelay time.Duration) pipeline {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pubsub := gochannel.NewGoChannel(
		gochannel.Config{Persistent: true},
		watermill.NopLogger{},
	)
	t.Cleanup(func() { pubsub.Close() })

	topics := msgbus.DefaultTopics()
	orderRepo := db.NewOrderRepositoryMock()
	productRepo := db.NewProductRepositoryMock()
	publisher := msgbus.NewPublisher(pubsub, topics, intakeDelay)
	handler := event.NewHandler(orderRepo, productRepo, publisher)

	router := msgbus.NewWatermillRouter(
		pubsub,
		pubsub,
		pubsub,
		handler,
		topics,
		watermill.NopLogger{},
	)
	go func() {
		assert.NoError(t, router.Run(ctx))
	}()
	<-router.Running()

	return pipeline{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		pubsub:      pubsub,
		topics:      topics,
		processed:   collectTopic(t, ctx, pubsub, topics.OrderProcessed),
		stock:       collectTopic(t, ctx, pubsub, topics.StockProcessed),
		poison:      collectTopic(t, ctx, pubsub, topics.Poison()),
	}
}

func (p pipeline) storeProduct(t *testing.T, stock int) entities.Product {
	t.Helper()

	product := entities.Product{
		ProductID:      uuid.NewString(),
		ProductName:    "Mechanical Keyboard",
		PriceCents:     8500,
		StockAvailable: stock,
	}
	require.NoError(t, p.productRepo.Create(context.Background(), product))
	return product
}

func newOrderRequest(product entities.Product, quantity int) entities.CreateOrderRequest {
	return entities.CreateOrderRequest{
		OrderID:        uuid.NewString(),
		CustomerID:     uuid.NewString(),
		CustomerName:   "Alan Turing",
		ProductID:      product.ProductID,
		ProductName:    product.ProductName,
		Quantity:       quantity,
		UnitPriceCents: product.PriceCents,
		StockAvailable: product.StockAvailable,
		ProductVersion: 1,
	}
}

func TestOrderPipeline(t *testing.T) {
	p := startPipeline(t, 100*time.Millisecond)
	ctx := context.Background()

	product := p.storeProduct(t, 10)
	request := newOrderRequest(product, 3)

	require.NoError(t, p.publisher.PublishCreateOrderRequest(ctx, request))

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		order, err := p.orderRepo.GetByID(ctx, request.OrderID)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, entities.OrderStatusSubmitted, order.Status)

		stored, err := p.productRepo.GetByID(ctx, product.ProductID)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 7, stored.StockAvailable)
	}, 10*time.Second, 100*time.Millisecond)

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		var created entities.OrderCreated
		for _, payload := range p.processed.Payloads() {
			var m entities.OrderCreated
			if err := json.Unmarshal([]byte(payload), &m); err == nil && m.OrderID == request.OrderID {
				created = m
			}
		}
		if !assert.Equal(t, request.OrderID, created.OrderID, "no OrderCreated for this order yet") {
			return
		}
		assert.Equal(t, entities.MessageTypeOrderCreated, created.Type)
		assert.Equal(t, int64(3*8500), created.TotalAmountCents)
		assert.Equal(t, "Submitted", created.Status)
	}, 10*time.Second, 100*time.Millisecond)
}

func TestOrderPipelineRedelivery(t *testing.T) {
	p := startPipeline(t, 0)
	ctx := context.Background()

	product := p.storeProduct(t, 10)
	request := newOrderRequest(product, 3)

	require.NoError(t, p.publisher.PublishCreateOrderRequest(ctx, request))
	require.NoError(t, p.publisher.PublishCreateOrderRequest(ctx, request))

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		count := 0
		for _, payload := range p.processed.Payloads() {
			var m entities.OrderCreated
			if err := json.Unmarshal([]byte(payload), &m); err == nil && m.OrderID == request.OrderID {
				count++
			}
		}
		assert.Equal(t, 2, count, "both deliveries must be acknowledged")
	}, 10*time.Second, 100*time.Millisecond)

	stored, err := p.productRepo.GetByID(ctx, product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.StockAvailable, "stock must be decremented exactly once")

	orders, err := p.orderRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderPipelineStatusUpdateForwarded(t *testing.T) {
	p := startPipeline(t, 0)
	ctx := context.Background()

	update := entities.OrderStatusUpdated{
		OrderID:        uuid.NewString(),
		PreviousStatus: "Submitted",
		NewStatus:      "Completed",
		UpdatedDateUTC: time.Now().UTC(),
		UpdatedBy:      "ops",
	}
	require.NoError(t, p.publisher.PublishOrderStatusUpdated(ctx, update))

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		found := false
		for _, payload := range p.processed.Payloads() {
			var m entities.OrderStatusUpdated
			if err := json.Unmarshal([]byte(payload), &m); err == nil &&
				m.OrderID == update.OrderID && m.NewStatus == "Completed" {
				found = true
			}
		}
		assert.True(t, found, "status update not forwarded yet")
	}, 10*time.Second, 100*time.Millisecond)
}

func TestOrderPipelinePoisonsUnfulfillableOrder(t *testing.T) {
	p := startPipeline(t, 0)
	ctx := context.Background()

	product := p.storeProduct(t, 2)
	request := newOrderRequest(product, 5)

	require.NoError(t, p.publisher.PublishCreateOrderRequest(ctx, request))

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		found := false
		for _, payload := range p.poison.Payloads() {
			var m entities.CreateOrderRequest
			if err := json.Unmarshal([]byte(payload), &m); err == nil && m.OrderID == request.OrderID {
				found = true
			}
		}
		assert.True(t, found, "unfulfillable order not dead-lettered yet")
	}, 20*time.Second, 200*time.Millisecond)

	stored, err := p.productRepo.GetByID(ctx, product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.StockAvailable, "a dead-lettered order must leave no side effects")

	_, err = p.orderRepo.GetByID(ctx, request.OrderID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestStockForwarderPipeline(t *testing.T) {
	p := startPipeline(t, 0)

	raw := `{"sku":"kb-42","delta":-3}`
	msg := wmessage.NewMessage(watermill.NewUUID(), []byte(raw))
	require.NoError(t, p.pubsub.Publish(p.topics.StockUpdates, msg))

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		found := false
		for _, payload := range p.stock.Payloads() {
			if strings.HasPrefix(payload, "Stock updated successfully: ") && strings.Contains(payload, "kb-42") {
				found = true
			}
		}
		assert.True(t, found, "stock update not forwarded yet")
	}, 10*time.Second, 100*time.Millisecond)
}
