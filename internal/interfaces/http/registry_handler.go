package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/alexpint/impacto-vendas/internal/application/dto"
	"github.com/alexpint/impacto-vendas/internal/application/usecase"
	"github.com/alexpint/impacto-vendas/internal/domain"
)

// RegistryHandler maneja las peticiones HTTP de la base de custos (protegido).
type RegistryHandler struct {
	uc *usecase.RegistryUseCase
}

// NewRegistryHandler construye el handler.
func NewRegistryHandler(uc *usecase.RegistryUseCase) *RegistryHandler {
	return &RegistryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar producto en la base de custos
// @Tags         registry
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCostEntryRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CostEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/registry [post]
func (h *RegistryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCostEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateSKU):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre, color y fornecedor son requeridos; costos no negativos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar base de custos
// @Tags         registry
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CostEntryListResponse
// @Router       /api/registry [get]
func (h *RegistryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetBySKU godoc
// @Summary      Obtener entrada por SKU
// @Tags         registry
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU de registro (1-NOMBRE-COLOR)"
// @Success      200  {object}  dto.CostEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/registry/{sku} [get]
func (h *RegistryHandler) GetBySKU(c *fiber.Ctx) error {
	skuCode := c.Params("sku")
	out, err := h.uc.GetBySKU(skuCode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar fornecedor y costos (SKU inmutable)
// @Tags         registry
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sku   path  string  true  "SKU de registro"
// @Param        body  body  dto.UpdateCostEntryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CostEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/registry/{sku} [put]
func (h *RegistryHandler) Update(c *fiber.Ctx) error {
	skuCode := c.Params("sku")
	var in dto.UpdateCostEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(skuCode, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedSKU):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_SKU", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fornecedor no vacío; costos no negativos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada
// @Tags         registry
// @Security     Bearer
// @Param        sku  path  string  true  "SKU de registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/registry/{sku} [delete]
func (h *RegistryHandler) Delete(c *fiber.Ctx) error {
	skuCode := c.Params("sku")
	if err := h.uc.Delete(skuCode); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
