package entities

type Product struct {
	ProductID      string `json:"product_id" db:"product_id"`
	ProductName    string `json:"product_name" db:"product_name"`
	Description    string `json:"description" db:"description"`
	PriceCents     int64  `json:"price_cents" db:"price_cents"`
	StockAvailable int    `json:"stock_available" db:"stock_available"`
	ImageURL       string `json:"image_url" db:"image_url"`
	Version        int64  `json:"version" db:"version"`
}
