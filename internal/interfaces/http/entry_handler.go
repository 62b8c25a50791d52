package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/application/inventory"
	"github.com/agrostock/agrostock-api/internal/domain"
)

// EntryHandler maneja las peticiones HTTP del CRUD de entradas de inventario.
type EntryHandler struct {
	uc *inventory.EntryUseCase
}

// NewEntryHandler construye el handler.
func NewEntryHandler(uc *inventory.EntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ingreso de inventario
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "product_id, content_per_control_unit, control_units_received y metadata del lote"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.CreateEntry(c.Context(), inventory.EntryInputDTO{
		ProductID:             in.ProductID,
		ProviderID:            in.ProviderID,
		BatchCode:             in.BatchCode,
		IntakeDate:            in.IntakeDate,
		ExpirationDate:        in.ExpirationDate,
		ControlUnit:           in.ControlUnit,
		ContentPerControlUnit: in.ContentPerControlUnit,
		ControlUnitsReceived:  in.ControlUnitsReceived,
		UnitCost:              in.UnitCost,
		CostPerControlUnit:    in.CostPerControlUnit,
		Notes:                 in.Notes,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromEntry(entry))
}

// Update godoc
// @Summary      Editar una entrada
// @Description  Si cambian las cantidades de empaque se recalcula el recibido
//
//	y el restante se recorta al nuevo tope.
//
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la entrada"
// @Param        body  body  dto.UpdateEntryRequest  true  "campos a modificar"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [put]
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.UpdateEntry(c.Context(), c.Params("id"), inventory.EntryPatchDTO{
		ProviderID:            in.ProviderID,
		BatchCode:             in.BatchCode,
		IntakeDate:            in.IntakeDate,
		ExpirationDate:        in.ExpirationDate,
		ClearExpiration:       in.ClearExpiration,
		ControlUnit:           in.ControlUnit,
		ContentPerControlUnit: in.ContentPerControlUnit,
		ControlUnitsReceived:  in.ControlUnitsReceived,
		UnitCost:              in.UnitCost,
		CostPerControlUnit:    in.CostPerControlUnit,
		Notes:                 in.Notes,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.FromEntry(entry))
}

// Delete godoc
// @Summary      Borrado lógico de una entrada
// @Description  Marca la entrada inactiva y agrega la observación a las notas.
//
//	Idempotente; no altera la cantidad restante ni el contador consolidado.
//
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la entrada"
// @Param        body  body  dto.DeleteEntryRequest  false "observación"
// @Success      200   {object}  dto.EntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteEntryRequest
	_ = c.BodyParser(&in) // el body es opcional
	entry, err := h.uc.SoftDeleteEntry(c.Context(), c.Params("id"), in.Observation)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.FromEntry(entry))
}

// GetByID godoc
// @Summary      Obtener una entrada
// @Tags         entries
// @Produce      json
// @Param        id  path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	entry, err := h.uc.GetEntry(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.FromEntry(entry))
}

// List godoc
// @Summary      Listar entradas
// @Tags         entries
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto. Vacío = todas."
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID != "" {
		list, err := h.uc.ListByProduct(c.Context(), productID)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(fiber.Map{"total": len(list), "entries": dto.FromEntries(list)})
	}
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "entries": dto.FromEntries(list)})
}

// mapError traduce errores de dominio a códigos HTTP.
func mapError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
