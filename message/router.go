package message

import (
	"retailer/message/event"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

func NewWatermillRouter(
	orderSubscriber message.Subscriber,
	stockSubscriber message.Subscriber,
	poisonPublisher message.Publisher,
	eventHandler event.Handler,
	topics Topics,
	watermillLogger watermill.LoggerAdapter,
) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger, poisonPublisher, topics.Poison())

	router.AddNoPublisherHandler(
		"OrderNotificationsProcessor",
		topics.OrderNotifications,
		orderSubscriber,
		eventHandler.ProcessOrderMessage,
	)

	router.AddNoPublisherHandler(
		"StockUpdatesProcessor",
		topics.StockUpdates,
		stockSubscriber,
		eventHandler.ForwardStockUpdate,
	)

	return router
}
