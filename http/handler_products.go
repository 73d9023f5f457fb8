package http

import (
	"net/http"

	"retailer/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type productRequest struct {
	ProductName    string `json:"product_name"`
	Description    string `json:"description"`
	PriceCents     int64  `json:"price_cents"`
	StockAvailable int    `json:"stock_available"`
	ImageURL       string `json:"image_url"`
}

func (h Handler) PostProducts(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.ProductName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_name is required")
	}
	if req.PriceCents < 0 || req.StockAvailable < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price_cents and stock_available must not be negative")
	}

	product := entities.Product{
		ProductID:      uuid.NewString(),
		ProductName:    req.ProductName,
		Description:    req.Description,
		PriceCents:     req.PriceCents,
		StockAvailable: req.StockAvailable,
		ImageURL:       req.ImageURL,
	}
	if err := h.productRepo.Create(c.Request().Context(), product); err != nil {
		return httpError(err)
	}

	created, err := h.productRepo.GetByID(c.Request().Context(), product.ProductID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h Handler) GetProducts(c echo.Context) error {
	list, err := h.productRepo.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, list)
}

func (h Handler) GetProductByID(c echo.Context) error {
	product, err := h.productRepo.GetByID(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

// PutProduct is the out-of-band product edit (pricing, description, manual
// stock corrections). It goes through the same version-checked write as the
// pipeline's stock decrement.
func (h Handler) PutProduct(c echo.Context) error {
	ctx := c.Request().Context()

	current, err := h.productRepo.GetByID(ctx, c.Param("product_id"))
	if err != nil {
		return httpError(err)
	}

	req := productRequest{
		ProductName:    current.ProductName,
		Description:    current.Description,
		PriceCents:     current.PriceCents,
		StockAvailable: current.StockAvailable,
		ImageURL:       current.ImageURL,
	}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.PriceCents < 0 || req.StockAvailable < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price_cents and stock_available must not be negative")
	}

	updated, err := h.productRepo.Update(ctx, entities.Product{
		ProductID:      current.ProductID,
		ProductName:    req.ProductName,
		Description:    req.Description,
		PriceCents:     req.PriceCents,
		StockAvailable: req.StockAvailable,
		ImageURL:       req.ImageURL,
		Version:        current.Version,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h Handler) DeleteProduct(c echo.Context) error {
	if err := h.productRepo.Delete(c.Request().Context(), c.Param("product_id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
