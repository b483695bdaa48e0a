package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmorales/batch-records-api/internal/application/analytics"
)

// DashboardHandler maneja los contadores y alertas del tablero.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler del tablero.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Contadores del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context(), GetUserID(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// LowStockAlerts godoc
// @Summary      Materias primas con stock bajo el mínimo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RawMaterialResponse
// @Router       /api/alerts/low-stock [get]
func (h *DashboardHandler) LowStockAlerts(c *fiber.Ctx) error {
	out, err := h.uc.GetLowStockAlerts(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
