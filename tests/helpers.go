package tests

import (
	"context"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"
)

// topicCollector drains one topic into memory so tests can assert on what the
// pipeline published.
type topicCollector struct {
	lock     sync.Mutex
	payloads []string
}

func collectTopic(t *testing.T, ctx context.Context, sub message.Subscriber, topic string) *topicCollector {
	t.Helper()

	messages, err := sub.Subscribe(ctx, topic)
	require.NoError(t, err)

	c := &topicCollector{}
	go func() {
		for msg := range messages {
			c.lock.Lock()
			c.payloads = append(c.payloads, string(msg.Payload))
			c.lock.Unlock()
			msg.Ack()
		}
	}()

	return c
}

func (c *topicCollector) Payloads() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]string(nil), c.payloads...)
}
