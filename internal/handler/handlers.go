package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recon/internal/service"
	"recon/internal/utils"
)

type Handler struct {
	Recon *service.Recon
}

func NewHandler(r *service.Recon) *Handler {
	return &Handler{Recon: r}
}

// Lookup runs a full recon pass for the path domain and returns the
// result envelope as JSON. No terminal rendering happens here.
func (h *Handler) Lookup(c echo.Context) error {
	domain := c.Param("domain")
	if !utils.IsValidTarget(domain) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid domain")
	}

	res := h.Recon.Lookup(c.Request().Context(), domain)
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
