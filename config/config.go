// Package config collects runtime configuration from the environment.
// Connection strings and addresses are injected here once and passed into
// constructors; nothing else in the repo reads credentials.
package config

import (
	"os"
	"strconv"
	"time"

	"retailer/message"
)

type Config struct {
	HTTPAddr    string
	RedisAddr   string
	PostgresURL string

	Topics message.Topics

	// IntakeVisibilityDelay keeps a freshly published CreateOrder request
	// invisible for a short moment; a throttle, not a correctness knob.
	IntakeVisibilityDelay time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvms(key string, defMs int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defMs) * time.Millisecond
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defMs) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func Load() Config {
	defaults := message.DefaultTopics()

	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		Topics: message.Topics{
			OrderNotifications: getenv("QUEUE_ORDER_NOTIFICATIONS", defaults.OrderNotifications),
			OrderProcessed:     getenv("QUEUE_ORDER_PROCESSED", defaults.OrderProcessed),
			StockUpdates:       getenv("QUEUE_STOCK_UPDATES", defaults.StockUpdates),
			StockProcessed:     getenv("QUEUE_STOCK_PROCESSED", defaults.StockProcessed),
		},
		IntakeVisibilityDelay: durenvms("INTAKE_VISIBILITY_DELAY_MS", 5000),
	}
}
