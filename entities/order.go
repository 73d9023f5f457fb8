package entities

import "time"

type OrderStatus string

const (
	OrderStatusSubmitted  OrderStatus = "Submitted"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

type Order struct {
	OrderID        string      `json:"order_id" db:"order_id"`
	CustomerID     string      `json:"customer_id" db:"customer_id"`
	ProductID      string      `json:"product_id" db:"product_id"`
	ProductName    string      `json:"product_name" db:"product_name"`
	Quantity       int         `json:"quantity" db:"quantity"`
	UnitPriceCents int64       `json:"unit_price_cents" db:"unit_price_cents"`
	OrderDateUTC   time.Time   `json:"order_date_utc" db:"order_date_utc"`
	Status         OrderStatus `json:"status" db:"status"`
	Version        int64       `json:"version" db:"version"`
}

func (o Order) TotalAmountCents() int64 {
	return o.UnitPriceCents * int64(o.Quantity)
}
