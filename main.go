package main

import (
	"context"
	"os"
	"os/signal"

	"retailer/config"
	"retailer/db"
	"retailer/message"
	"retailer/service"
	observability "retailer/trace"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	tp := observability.ConfigureTraceProvider()
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Panic("could not connect to Postgres")
	}
	defer conn.Close()
	conn.MigrateSchema()

	redisClient := message.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	svc := service.New(cfg, redisClient, conn)

	logrus.Info("Service starting...")

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Panic("service stopped with error")
	}
}
