package message

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retailer_messages_processed_total",
			Help: "Messages handled per handler and result.",
		},
		[]string{"handler", "result"},
	)

	messageProcessingSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retailer_message_processing_seconds",
			Help:    "Message handling duration per handler.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)
)

func observeMessage(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		handlerName := message.HandlerNameFromCtx(msg.Context())
		start := time.Now()

		msgs, err := h(msg)

		result := "ok"
		if err != nil {
			result = "error"
		}
		messagesProcessedTotal.WithLabelValues(handlerName, result).Inc()
		messageProcessingSeconds.WithLabelValues(handlerName).Observe(time.Since(start).Seconds())

		return msgs, err
	}
}
