package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/application/inventory"
)

// RechargeHandler maneja las solicitudes de recarga emitidas por el módulo
// de alimentación cuando un consumo queda corto.
type RechargeHandler struct {
	uc *inventory.RechargeUseCase
}

// NewRechargeHandler construye el handler.
func NewRechargeHandler(uc *inventory.RechargeUseCase) *RechargeHandler {
	return &RechargeHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar solicitud de recarga
// @Description  Acepta product_id o, si el emisor no lo resolvió, un nombre
//
//	aproximado. Solicitudes pendientes del mismo producto se fusionan.
//
// @Tags         recharges
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordRechargeRequest  true  "solicitud"
// @Success      201   {object}  dto.RechargeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recharges [post]
func (h *RechargeHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordRechargeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	request, err := h.uc.Record(c.Context(), inventory.RechargeInputDTO{
		ProductID:          in.ProductID,
		ProductNameHint:    in.ProductNameHint,
		RequestedAt:        in.RequestedAt,
		RequiredQuantity:   in.RequiredQuantity,
		AvailableAtRequest: in.AvailableAtRequest,
		OriginLotCode:      in.OriginLotCode,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRecharge(request))
}

// Resolve godoc
// @Summary      Ejecutar ciclo de resolución
// @Description  Marca resueltas las solicitudes cuyo producto ya tiene stock
//
//	válido. El mismo ciclo corre periódicamente en segundo plano; este
//	endpoint lo dispara bajo demanda.
//
// @Tags         recharges
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/recharges/resolve [post]
func (h *RechargeHandler) Resolve(c *fiber.Ctx) error {
	resolved, err := h.uc.ResolvePending(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"resolved": resolved})
}

// Pending godoc
// @Summary      Solicitudes pendientes
// @Tags         recharges
// @Produce      json
// @Success      200  {array}  dto.RechargeResponse
// @Router       /api/recharges/pending [get]
func (h *RechargeHandler) Pending(c *fiber.Ctx) error {
	list, err := h.uc.Pending(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "requests": dto.FromRecharges(list)})
}

// Resolved godoc
// @Summary      Solicitudes resueltas
// @Tags         recharges
// @Produce      json
// @Success      200  {array}  dto.RechargeResponse
// @Router       /api/recharges/resolved [get]
func (h *RechargeHandler) Resolved(c *fiber.Ctx) error {
	list, err := h.uc.Resolved(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "requests": dto.FromRecharges(list)})
}
