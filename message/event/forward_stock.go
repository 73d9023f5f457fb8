package event

import (
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"
)

// processedStockPrefix is the fixed wrapper applied to forwarded stock
// messages; downstream tooling greps for it.
const processedStockPrefix = "Stock updated successfully: "

// ForwardStockUpdate republishes stock update messages to the processed-stock
// queue. The payload is opaque: no validation, no state.
func (h Handler) ForwardStockUpdate(msg *message.Message) error {
	ctx := msg.Context()
	log.FromContext(ctx).Info("Forwarding stock update")

	return h.publisher.PublishStockProcessed(ctx, append([]byte(processedStockPrefix), msg.Payload...))
}
