package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Message type tags carried in the "type" field of every queue payload.
const (
	MessageTypeCreateOrder        = "CreateOrder"
	MessageTypeOrderStatusUpdated = "OrderStatusUpdated"
	MessageTypeOrderCreated       = "OrderCreated"
)

var (
	ErrMissingMessageType = errors.New("message does not contain a type field")
	ErrUnknownMessageType = errors.New("unknown message type")
)

// CreateOrderRequest asks the notification processor to create an order.
// OrderID is generated at intake and doubles as the idempotency key under
// at-least-once delivery. Product fields are snapshots taken at validation
// time and may be stale when the message is consumed.
type CreateOrderRequest struct {
	Type           string `json:"type"`
	OrderID        string `json:"order_id"`
	CustomerID     string `json:"customer_id"`
	CustomerName   string `json:"customer_name"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	StockAvailable int    `json:"stock_available"`
	ProductVersion int64  `json:"product_version"`
}

type OrderStatusUpdated struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	UpdatedDateUTC time.Time `json:"updated_date_utc"`
	UpdatedBy      string    `json:"updated_by"`
}

type OrderCreated struct {
	Type             string    `json:"type"`
	OrderID          string    `json:"order_id"`
	CustomerID       string    `json:"customer_id"`
	CustomerName     string    `json:"customer_name"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	Quantity         int       `json:"quantity"`
	UnitPriceCents   int64     `json:"unit_price_cents"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	OrderDateUTC     time.Time `json:"order_date_utc"`
	Status           string    `json:"status"`
}

// DecodeOrderMessage parses a payload from the order notifications queue into
// one of the closed set of message types. A missing or unrecognized type tag
// is an error the caller must handle explicitly, never a silent success.
func DecodeOrderMessage(payload []byte) (any, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &tag); err != nil {
		return nil, fmt.Errorf("malformed order message: %w", err)
	}
	if tag.Type == "" {
		return nil, ErrMissingMessageType
	}

	switch tag.Type {
	case MessageTypeCreateOrder:
		var m CreateOrderRequest
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("malformed %s message: %w", tag.Type, err)
		}
		return m, nil
	case MessageTypeOrderStatusUpdated:
		var m OrderStatusUpdated
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("malformed %s message: %w", tag.Type, err)
		}
		return m, nil
	case MessageTypeOrderCreated:
		var m OrderCreated
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("malformed %s message: %w", tag.Type, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageType, tag.Type)
	}
}
