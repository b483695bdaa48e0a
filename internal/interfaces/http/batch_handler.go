package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmorales/batch-records-api/internal/application/catalog"
	"github.com/dmorales/batch-records-api/internal/application/dto"
)

// BatchHandler maneja los cálculos de lote: formulación escalada,
// materiales de empaque y tiempo de producción.
type BatchHandler struct {
	uc *catalog.UseCase
}

// NewBatchHandler construye el handler de cálculos.
func NewBatchHandler(uc *catalog.UseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular formulación para una cantidad
// @Description  Escala los porcentajes de la receta a la cantidad a
// @Description  producir y valida stock disponible.
// @Tags         batch
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateRequest  true  "productId, quantity"
// @Success      200   {object}  dto.CalculateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batch/calculate [post]
func (h *BatchHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Calculate(c.Context(), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// CalculatePackaging godoc
// @Summary      Calcular materiales de empaque para N unidades
// @Tags         batch
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculatePackagingRequest  true  "units"
// @Success      200   {object}  dto.CalculatePackagingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batch/calculate-packaging [post]
func (h *BatchHandler) CalculatePackaging(c *fiber.Ctx) error {
	var in dto.CalculatePackagingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.CalculatePackaging(c.Context(), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// CalculateTime godoc
// @Summary      Calcular horas trabajadas entre dos marcas de tiempo
// @Tags         batch
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateTimeRequest  true  "startTime, endTime (HH:MM)"
// @Success      200   {object}  dto.CalculateTimeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batch/calculate-time [post]
func (h *BatchHandler) CalculateTime(c *fiber.Ctx) error {
	var in dto.CalculateTimeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.CalculateTime(in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
