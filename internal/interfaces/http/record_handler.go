package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dmorales/batch-records-api/internal/application/dto"
	"github.com/dmorales/batch-records-api/internal/application/records"
)

// RecordHandler maneja los registros de lote y su ciclo de firma.
type RecordHandler struct {
	uc *records.UseCase
}

// NewRecordHandler construye el handler de registros.
func NewRecordHandler(uc *records.UseCase) *RecordHandler {
	return &RecordHandler{uc: uc}
}

// paramID lee el parámetro :id de la ruta como int64.
func paramID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// Create godoc
// @Summary      Crear registro de lote (borrador)
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecordRequest  true  "Datos del lote"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/records [post]
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in, requestMeta(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateComplete godoc
// @Summary      Crear registro completo con formulación dispensada
// @Description  Persiste el registro, el snapshot de formulación y los
// @Description  descuentos de stock en una sola transacción.
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompleteRecordRequest  true  "Registro completo"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/records/complete [post]
func (h *RecordHandler) CreateComplete(c *fiber.Ctx) error {
	var in dto.CreateCompleteRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.CreateComplete(c.Context(), GetUserID(c), in, requestMeta(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar registros
// @Description  Los operadores ven solo sus registros; admin y
// @Description  verificador ven todos.
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RecordResponse
// @Router       /api/records [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c), GetRole(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// GetComplete godoc
// @Summary      Obtener registro con su formulación
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del registro"
// @Success      200  {object}  dto.CompleteRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/records/{id}/complete [get]
func (h *RecordHandler) GetComplete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	out, err := h.uc.GetComplete(c.Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Sign godoc
// @Summary      Firmar registro (operador dueño)
// @Description  Transición draft->signed. Calcula el hash SHA-256 del
// @Description  contenido y lo firma con la llave RSA del operador.
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del registro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/records/{id}/sign [post]
func (h *RecordHandler) Sign(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	if err := h.uc.Sign(c.Context(), GetUserID(c), id, requestMeta(c)); err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "registro firmado"})
}

// Verify godoc
// @Summary      Verificar registro (solo verificador)
// @Description  Transición signed->approved o signed->rejected.
// @Tags         records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del registro"
// @Param        body  body  dto.VerifyRequest  true  "Decisión"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/records/{id}/verify [post]
func (h *RecordHandler) Verify(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	var in dto.VerifyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	newStatus, err := h.uc.Verify(c.Context(), GetUserID(c), id, in.Approved, requestMeta(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "registro " + newStatus})
}

// DownloadPDF godoc
// @Summary      Descargar registro en PDF
// @Tags         records
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del registro"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/records/{id}/pdf [get]
func (h *RecordHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	pdf, err := h.uc.RenderPDF(c.Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="registro-%d.pdf"`, id))
	return c.Send(pdf)
}
