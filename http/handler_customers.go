package http

import (
	"net/http"

	"retailer/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type customerRequest struct {
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
}

func (h Handler) PostCustomers(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	customer := entities.Customer{
		CustomerID:      uuid.NewString(),
		Name:            req.Name,
		Surname:         req.Surname,
		Username:        req.Username,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
	}
	if err := h.customerRepo.Create(c.Request().Context(), customer); err != nil {
		return httpError(err)
	}

	created, err := h.customerRepo.GetByID(c.Request().Context(), customer.CustomerID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h Handler) GetCustomers(c echo.Context) error {
	list, err := h.customerRepo.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, list)
}

func (h Handler) GetCustomerByID(c echo.Context) error {
	customer, err := h.customerRepo.GetByID(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, customer)
}

func (h Handler) PutCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	current, err := h.customerRepo.GetByID(ctx, c.Param("customer_id"))
	if err != nil {
		return httpError(err)
	}

	req := customerRequest{
		Name:            current.Name,
		Surname:         current.Surname,
		Username:        current.Username,
		Email:           current.Email,
		ShippingAddress: current.ShippingAddress,
	}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	updated, err := h.customerRepo.Update(ctx, entities.Customer{
		CustomerID:      current.CustomerID,
		Name:            req.Name,
		Surname:         req.Surname,
		Username:        req.Username,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		Version:         current.Version,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h Handler) DeleteCustomer(c echo.Context) error {
	if err := h.customerRepo.Delete(c.Request().Context(), c.Param("customer_id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
