package entities

type Customer struct {
	CustomerID      string `json:"customer_id" db:"customer_id"`
	Name            string `json:"name" db:"name"`
	Surname         string `json:"surname" db:"surname"`
	Username        string `json:"username" db:"username"`
	Email           string `json:"email" db:"email"`
	ShippingAddress string `json:"shipping_address" db:"shipping_address"`
	Version         int64  `json:"version" db:"version"`
}

func (c Customer) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Name + " " + c.Surname
}
