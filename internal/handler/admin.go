package handler

import (
	"net/http"
	"printwear-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	catalogService service.CatalogService
}

func NewAdminHandler(catalogService service.CatalogService) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
	}
}

func (h *AdminHandler) SyncProducts(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.catalogService.SyncProducts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) ListShops(c echo.Context) error {
	ctx := c.Request().Context()

	shops, err := h.catalogService.ListShops(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"shops": shops})
}
