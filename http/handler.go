package http

import (
	"context"
	"errors"
	"net/http"

	"retailer/entities"
	"retailer/orders"

	"github.com/labstack/echo/v4"
)

type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type ProductRepository interface {
	Create(ctx context.Context, product entities.Product) error
	GetByID(ctx context.Context, productID string) (entities.Product, error)
	List(ctx context.Context) ([]entities.Product, error)
	Update(ctx context.Context, product entities.Product) (entities.Product, error)
	Delete(ctx context.Context, productID string) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer entities.Customer) error
	GetByID(ctx context.Context, customerID string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
	Update(ctx context.Context, customer entities.Customer) (entities.Customer, error)
	Delete(ctx context.Context, customerID string) error
}

type Handler struct {
	intakeService orders.IntakeService
	statusService orders.StatusService
	orderRepo     OrderRepository
	productRepo   ProductRepository
	customerRepo  CustomerRepository
}

// httpError maps the discriminated error kinds onto status codes so callers
// can tell validation, missing references, business rejections and retryable
// conflicts apart.
func httpError(err error) error {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInsufficientStock):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}
