package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrostock/agrostock-api/internal/application/dto"
	"github.com/agrostock/agrostock-api/internal/application/inventory"
)

// StockHandler maneja las consultas de stock (válido, vencido, por vencer),
// el consumo FEFO, la conciliación y el reporte de reposición.
type StockHandler struct {
	consume       *inventory.ConsumeUseCase
	calc          *inventory.StockUseCase
	reconcile     *inventory.ReconcileUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	consume *inventory.ConsumeUseCase,
	calc *inventory.StockUseCase,
	reconcile *inventory.ReconcileUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *StockHandler {
	return &StockHandler{
		consume:       consume,
		calc:          calc,
		reconcile:     reconcile,
		replenishment: replenishment,
	}
}

// Consume godoc
// @Summary      Consumo FEFO
// @Description  Descuenta la cantidad pedida de las entradas válidas del producto
//
//	en orden de vencimiento. Un faltante no es error: se responde 200 con
//	shortfall > 0 y el caller decide si registra una solicitud de recarga.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "product_id, quantity, context"
// @Success      200   {object}  dto.ConsumeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/consume [post]
func (h *StockHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.consume.Consume(c.Context(), inventory.ConsumeInputDTO{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Context:   in.Context,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.FromConsumptionResult(result))
}

// ValidStock godoc
// @Summary      Stock válido de un producto
// @Description  Suma del restante en entradas activas, no vencidas y con
//
//	cantidad. Incluye has_entries para distinguir "nunca abastecido" de "agotado".
//
// @Tags         stock
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/valid/{productID} [get]
func (h *StockHandler) ValidStock(c *fiber.Ctx) error {
	productID := c.Params("productID")
	qty, err := h.calc.ValidStock(c.Context(), productID)
	if err != nil {
		return mapError(c, err)
	}
	hasEntries, err := h.calc.HasAnyEntries(c.Context(), productID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Quantity: qty.Round(2), HasEntries: &hasEntries})
}

// ValidStockByProduct godoc
// @Summary      Stock válido de todos los productos
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/valid [get]
func (h *StockHandler) ValidStockByProduct(c *fiber.Ctx) error {
	totals, err := h.calc.ValidStockByProduct(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(totals))
	for productID, qty := range totals {
		out = append(out, dto.StockResponse{ProductID: productID, Quantity: qty.Round(2)})
	}
	return c.JSON(fiber.Map{"total": len(out), "stocks": out})
}

// ExpiredStock godoc
// @Summary      Stock vencido de un producto
// @Tags         stock
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/expired/{productID} [get]
func (h *StockHandler) ExpiredStock(c *fiber.Ctx) error {
	productID := c.Params("productID")
	qty, err := h.calc.ExpiredStock(c.Context(), productID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Quantity: qty.Round(2)})
}

// ListExpired godoc
// @Summary      Entradas vencidas con restante
// @Tags         stock
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto. Vacío = todos."
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/stock/expired [get]
func (h *StockHandler) ListExpired(c *fiber.Ctx) error {
	list, err := h.calc.ListExpired(c.Context(), c.Query("product_id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "entries": dto.FromEntries(list)})
}

// ListExpiringSoon godoc
// @Summary      Entradas por vencer
// @Tags         stock
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto. Vacío = todos."
// @Param        within_days  query  int     false  "Ventana en días (default configurado, 15)"
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/stock/expiring-soon [get]
func (h *StockHandler) ListExpiringSoon(c *fiber.Ctx) error {
	withinDays := c.QueryInt("within_days")
	list, err := h.calc.ListExpiringSoon(c.Context(), c.Query("product_id"), withinDays)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "entries": dto.FromEntries(list)})
}

// Mismatch godoc
// @Summary      Conciliación contra el contador consolidado
// @Description  Compara el stock válido derivado de entradas con el contador
//
//	consolidado del producto. Diagnóstico: no corrige ningún lado.
//
// @Tags         stock
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MismatchResponse
// @Router       /api/stock/mismatch/{productID} [get]
func (h *StockHandler) Mismatch(c *fiber.Ctx) error {
	report, err := h.reconcile.DetectMismatch(c.Context(), c.Params("productID"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.MismatchResponse{
		ProductID:    report.ProductID,
		ValidStock:   report.ValidStock.Round(2),
		Consolidated: report.Consolidated.Round(2),
		Difference:   report.Difference.Round(2),
		Mismatch:     report.Mismatch,
	})
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Productos con stock válido por debajo del umbral mínimo del
//
//	catálogo, con cantidad sugerida de pedido y ranking de urgencia.
//
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.replenishment.LowStockReport(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LowStockItemDTO{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			BaseUnit:     item.BaseUnit,
			Category:     string(item.Category),
			ValidStock:   item.ValidStock.Round(2),
			MinimumLevel: item.MinimumLevel.Round(2),
			TargetLevel:  item.TargetLevel.Round(2),
			SuggestedQty: item.SuggestedQty.Round(2),
			HasEntries:   item.HasEntries,
			Priority:     item.Priority,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}
