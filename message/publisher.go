package message

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"retailer/entities"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher marshals the queue message union onto the right topics. Every
// payload carries its type tag; the intake message additionally carries a
// delayed-visibility stamp.
type Publisher struct {
	pub         message.Publisher
	topics      Topics
	intakeDelay time.Duration
}

func NewPublisher(pub message.Publisher, topics Topics, intakeDelay time.Duration) Publisher {
	if pub == nil {
		panic("pub is nil")
	}
	return Publisher{
		pub:         pub,
		topics:      topics,
		intakeDelay: intakeDelay,
	}
}

func (p Publisher) PublishCreateOrderRequest(ctx context.Context, m entities.CreateOrderRequest) error {
	m.Type = entities.MessageTypeCreateOrder

	msg, err := newJSONMessage(ctx, m)
	if err != nil {
		return err
	}
	if p.intakeDelay > 0 {
		msg.Metadata.Set(delayedUntilMetadataKey, time.Now().UTC().Add(p.intakeDelay).Format(time.RFC3339Nano))
	}

	return p.pub.Publish(p.topics.OrderNotifications, msg)
}

func (p Publisher) PublishOrderStatusUpdated(ctx context.Context, m entities.OrderStatusUpdated) error {
	m.Type = entities.MessageTypeOrderStatusUpdated

	msg, err := newJSONMessage(ctx, m)
	if err != nil {
		return err
	}

	return p.pub.Publish(p.topics.OrderNotifications, msg)
}

func (p Publisher) PublishOrderCreated(ctx context.Context, m entities.OrderCreated) error {
	m.Type = entities.MessageTypeOrderCreated

	msg, err := newJSONMessage(ctx, m)
	if err != nil {
		return err
	}

	return p.pub.Publish(p.topics.OrderProcessed, msg)
}

// ForwardOrderProcessed republishes an already-encoded order message verbatim
// to the processed-order topic.
func (p Publisher) ForwardOrderProcessed(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	return p.pub.Publish(p.topics.OrderProcessed, msg)
}

func (p Publisher) PublishStockProcessed(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	return p.pub.Publish(p.topics.StockProcessed, msg)
}

func newJSONMessage(ctx context.Context, v any) (*message.Message, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not marshal %T: %w", v, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	return msg, nil
}
