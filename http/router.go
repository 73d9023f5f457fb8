package http

import (
	"net/http"

	"retailer/orders"

	libHttp "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewHttpRouter(
	intakeService orders.IntakeService,
	statusService orders.StatusService,
	orderRepo OrderRepository,
	productRepo ProductRepository,
	customerRepo CustomerRepository,
) *echo.Echo {
	e := libHttp.NewEcho()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		intakeService: intakeService,
		statusService: statusService,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
	}

	e.POST("/orders", handler.PostOrders)
	e.GET("/orders", handler.GetOrders)
	e.GET("/orders/:order_id", handler.GetOrderByID)
	e.POST("/orders/:order_id/status", handler.PostOrderStatus)
	e.PUT("/orders/:order_id/status", handler.PostOrderStatus)
	e.DELETE("/orders/:order_id", handler.DeleteOrder)

	e.POST("/products", handler.PostProducts)
	e.GET("/products", handler.GetProducts)
	e.GET("/products/:product_id", handler.GetProductByID)
	e.PUT("/products/:product_id", handler.PutProduct)
	e.DELETE("/products/:product_id", handler.DeleteProduct)

	e.POST("/customers", handler.PostCustomers)
	e.GET("/customers", handler.GetCustomers)
	e.GET("/customers/:customer_id", handler.GetCustomerByID)
	e.PUT("/customers/:customer_id", handler.PutCustomer)
	e.DELETE("/customers/:customer_id", handler.DeleteCustomer)

	return e
}
