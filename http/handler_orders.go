package http

import (
	"net/http"

	"retailer/orders"

	"github.com/labstack/echo/v4"
)

type orderStatusRequest struct {
	Status    string `json:"status"`
	UpdatedBy string `json:"updated_by"`
}

// PostOrders accepts a new-order request. Fulfillment is asynchronous: a
// successful response only means the request was validated and queued.
func (h Handler) PostOrders(c echo.Context) error {
	var req orders.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ack, err := h.intakeService.PlaceOrder(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusAccepted, ack)
}

func (h Handler) GetOrders(c echo.Context) error {
	list, err := h.orderRepo.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, list)
}

func (h Handler) GetOrderByID(c echo.Context) error {
	order, err := h.orderRepo.GetByID(c.Request().Context(), c.Param("order_id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h Handler) PostOrderStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	order, err := h.statusService.UpdateStatus(c.Request().Context(), c.Param("order_id"), req.Status, req.UpdatedBy)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h Handler) DeleteOrder(c echo.Context) error {
	if err := h.orderRepo.Delete(c.Request().Context(), c.Param("order_id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
