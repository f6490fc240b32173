package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

// CacheHandler exposes cache administration.
type CacheHandler struct {
	admin ports.CacheAdmin
}

func NewCacheHandler(admin ports.CacheAdmin) *CacheHandler {
	return &CacheHandler{admin: admin}
}

// Stats handles GET /cache.
//
// @Summary      List caches
// @Tags         cache
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cacheStatsResponse
// @Router       /cache [get]
func (h *CacheHandler) Stats(c echo.Context) error {
	names := h.admin.Names()
	return c.JSON(http.StatusOK, cacheStatsResponse{Caches: names, Total: len(names)})
}

// ClearAll handles DELETE /cache/clear.
//
// @Summary      Clear every cache
// @Tags         cache
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /cache/clear [delete]
func (h *CacheHandler) ClearAll(c echo.Context) error {
	if err := h.admin.ClearAll(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "all caches cleared"})
}

// Clear handles DELETE /cache/:name.
//
// @Summary      Clear one cache
// @Tags         cache
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Cache name"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /cache/{name} [delete]
func (h *CacheHandler) Clear(c echo.Context) error {
	name := c.Param("name")
	if err := h.admin.ClearCache(c.Request().Context(), name); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cache " + name + " cleared"})
}
