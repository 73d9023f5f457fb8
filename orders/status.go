package orders

import (
	"context"
	"fmt"
	"time"

	"retailer/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus, version int64) (entities.Order, error)
}

// StatusService applies status transitions to existing orders. The table
// write is the source of truth; the queue notification is best effort.
type StatusService struct {
	orderRepo OrderRepository
	publisher EventPublisher
}

func NewStatusService(orderRepo OrderRepository, publisher EventPublisher) StatusService {
	if orderRepo == nil {
		panic("missing orderRepo")
	}
	if publisher == nil {
		panic("missing publisher")
	}
	return StatusService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

func (s StatusService) UpdateStatus(ctx context.Context, orderID string, newStatus string, updatedBy string) (entities.Order, error) {
	if newStatus == "" {
		return entities.Order{}, fmt.Errorf("status is required: %w", entities.ErrValidation)
	}
	if updatedBy == "" {
		updatedBy = "System"
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	previous := order.Status

	// A conflict here means a concurrent update happened between read and
	// write; it is returned to the caller as retryable, never overwritten.
	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, entities.OrderStatus(newStatus), order.Version)
	if err != nil {
		return entities.Order{}, err
	}

	err = s.publisher.PublishOrderStatusUpdated(ctx, entities.OrderStatusUpdated{
		OrderID:        updated.OrderID,
		PreviousStatus: string(previous),
		NewStatus:      string(updated.Status),
		UpdatedDateUTC: time.Now().UTC(),
		UpdatedBy:      updatedBy,
	})
	if err != nil {
		// The status change already took effect; failing to notify is logged,
		// not rolled back.
		log.FromContext(ctx).
			WithField("order_id", orderID).
			WithError(err).
			Error("Status updated but notification publish failed")
	}

	return updated, nil
}
