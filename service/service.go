package service

import (
	"context"

	"retailer/config"
	"retailer/db"
	retailerHttp "retailer/http"
	"retailer/message"
	"retailer/message/event"
	"retailer/orders"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	httpAddr        string
}

func New(
	cfg config.Config,
	redisClient *redis.Client,
	conn db.DB,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)
	publisher := message.NewPublisher(redisPublisher, cfg.Topics, cfg.IntakeVisibilityDelay)

	orderRepo := db.NewOrderRepository(&conn)
	productRepo := db.NewProductRepository(&conn)
	customerRepo := db.NewCustomerRepository(&conn)

	eventHandler := event.NewHandler(orderRepo, productRepo, publisher)

	orderSubscriber := message.NewRedisSubscriber(redisClient, "svc-retailer.order-notifications", watermillLogger)
	stockSubscriber := message.NewRedisSubscriber(redisClient, "svc-retailer.stock-updates", watermillLogger)

	watermillRouter := message.NewWatermillRouter(
		orderSubscriber,
		stockSubscriber,
		redisPublisher,
		eventHandler,
		cfg.Topics,
		watermillLogger,
	)

	intakeService := orders.NewIntakeService(customerRepo, productRepo, publisher)
	statusService := orders.NewStatusService(orderRepo, publisher)

	echoRouter := retailerHttp.NewHttpRouter(
		intakeService,
		statusService,
		orderRepo,
		productRepo,
		customerRepo,
	)

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		httpAddr:        cfg.HTTPAddr,
	}
}

func (s Service) Run(
	ctx context.Context,
) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the HTTP server must not report healthy before the router consumes
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.httpAddr)
		if err != nil {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
