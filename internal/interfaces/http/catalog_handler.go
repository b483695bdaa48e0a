package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmorales/batch-records-api/internal/application/catalog"
	"github.com/dmorales/batch-records-api/internal/application/dto"
)

// CatalogHandler maneja productos, formulaciones, materias primas y
// materiales de empaque.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Crear producto (solo admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.CreateProduct(c.Context(), GetUserID(c), in, requestMeta(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	out, err := h.uc.GetProduct(c.Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos activos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// GetFormulation godoc
// @Summary      Obtener la formulación de un producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {array}   dto.FormulationItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/formulation [get]
func (h *CatalogHandler) GetFormulation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	out, err := h.uc.GetFormulation(c.Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// CreateRawMaterial godoc
// @Summary      Crear materia prima (solo admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRawMaterialRequest  true  "Datos de la materia prima"
// @Success      201   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/raw-materials [post]
func (h *CatalogHandler) CreateRawMaterial(c *fiber.Ctx) error {
	var in dto.CreateRawMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.CreateRawMaterial(c.Context(), GetUserID(c), in, requestMeta(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRawMaterials godoc
// @Summary      Listar materias primas activas
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RawMaterialResponse
// @Router       /api/raw-materials [get]
func (h *CatalogHandler) ListRawMaterials(c *fiber.Ctx) error {
	out, err := h.uc.ListRawMaterials(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ListPackagingMaterials godoc
// @Summary      Listar materiales de empaque activos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PackagingMaterialResponse
// @Router       /api/packaging-materials [get]
func (h *CatalogHandler) ListPackagingMaterials(c *fiber.Ctx) error {
	out, err := h.uc.ListPackagingMaterials(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
