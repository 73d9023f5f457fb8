package message

// PoisonQueueSuffix follows the dead-letter naming convention of the
// underlying queue infrastructure: source queue name plus a fixed suffix.
const PoisonQueueSuffix = "-poison"

type Topics struct {
	OrderNotifications string
	OrderProcessed     string
	StockUpdates       string
	StockProcessed     string
}

func DefaultTopics() Topics {
	return Topics{
		OrderNotifications: "order-notifications",
		OrderProcessed:     "order-processed",
		StockUpdates:       "stock-updates",
		StockProcessed:     "stock-processed",
	}
}

func (t Topics) Poison() string {
	return t.OrderNotifications + PoisonQueueSuffix
}
