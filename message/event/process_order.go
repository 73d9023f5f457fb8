package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"retailer/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"
)

// maxStockUpdateAttempts bounds the re-read/decrement/write loop under
// version conflicts before the message is escalated as a processing failure.
const maxStockUpdateAttempts = 3

// ProcessOrderMessage consumes the order notifications queue. Messages with a
// missing or unrecognized type tag are logged and consumed without effect:
// retrying cannot make an unknown payload succeed, so they are dropped rather
// than poison-looped.
func (h Handler) ProcessOrderMessage(msg *message.Message) error {
	ctx := msg.Context()

	decoded, err := entities.DecodeOrderMessage(msg.Payload)
	if err != nil {
		log.FromContext(ctx).
			WithError(err).
			Warn("Dropping unprocessable order message")
		return nil
	}

	switch m := decoded.(type) {
	case entities.CreateOrderRequest:
		return h.processCreateOrder(ctx, m)
	case entities.OrderStatusUpdated:
		// The table mutation already happened in the status update service;
		// this is a pass-through to the processed-order queue.
		log.FromContext(ctx).Info("Forwarding order status update")
		return h.publisher.ForwardOrderProcessed(ctx, msg.Payload)
	default:
		log.FromContext(ctx).
			WithField("message_type", fmt.Sprintf("%T", decoded)).
			Warn("Dropping order message with no processing rule")
		return nil
	}
}

func (h Handler) processCreateOrder(ctx context.Context, m entities.CreateOrderRequest) error {
	logger := log.FromContext(ctx).WithField("order_id", m.OrderID)
	logger.Info("Processing CreateOrder")

	order := entities.Order{
		OrderID:        m.OrderID,
		CustomerID:     m.CustomerID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Quantity:       m.Quantity,
		UnitPriceCents: m.UnitPriceCents,
		OrderDateUTC:   time.Now().UTC(),
		Status:         entities.OrderStatusSubmitted,
	}

	inserted, err := h.orderRepo.CreateIfAbsent(ctx, order)
	if err != nil {
		return fmt.Errorf("could not create order %s: %w", m.OrderID, err)
	}

	if inserted {
		if err := h.decrementStock(ctx, m.ProductID, m.Quantity); err != nil {
			// The row must not outlive a failed decrement: a redelivery would
			// read it as already-processed and skip the stock update.
			if deleteErr := h.orderRepo.Delete(ctx, m.OrderID); deleteErr != nil {
				logger.WithError(deleteErr).Error("Could not roll back order after failed stock update")
			}
			return err
		}
		logger.Info("Order created and stock decremented")
	} else {
		// Redelivered message: the stock was already decremented, only the
		// downstream event may still be missing. The stored row is the source
		// of truth, including any status transition that landed since.
		stored, err := h.orderRepo.GetByID(ctx, m.OrderID)
		if err != nil {
			return fmt.Errorf("could not read order %s: %w", m.OrderID, err)
		}
		order = stored
		logger.Info("Order already exists, skipping stock decrement")
	}

	return h.publisher.PublishOrderCreated(ctx, entities.OrderCreated{
		OrderID:          order.OrderID,
		CustomerID:       order.CustomerID,
		CustomerName:     m.CustomerName,
		ProductID:        order.ProductID,
		ProductName:      order.ProductName,
		Quantity:         order.Quantity,
		UnitPriceCents:   order.UnitPriceCents,
		TotalAmountCents: order.TotalAmountCents(),
		OrderDateUTC:     order.OrderDateUTC,
		Status:           string(order.Status),
	})
}

// decrementStock always works against the live product row, never the
// snapshot carried in the message. A version conflict means another handler
// committed between our read and write; re-read and try again, bounded.
func (h Handler) decrementStock(ctx context.Context, productID string, quantity int) error {
	var lastErr error
	for attempt := 0; attempt < maxStockUpdateAttempts; attempt++ {
		product, err := h.productRepo.GetByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("could not read product %s: %w", productID, err)
		}

		if product.StockAvailable < quantity {
			return fmt.Errorf("product %s has %d in stock, need %d: %w",
				productID, product.StockAvailable, quantity, entities.ErrInsufficientStock)
		}

		err = h.productRepo.UpdateStock(ctx, productID, product.StockAvailable-quantity, product.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, entities.ErrConflict) {
			return fmt.Errorf("could not update stock for product %s: %w", productID, err)
		}
		lastErr = err
	}

	return fmt.Errorf("stock update for product %s lost %d optimistic concurrency races: %w",
		productID, maxStockUpdateAttempts, lastErr)
}
