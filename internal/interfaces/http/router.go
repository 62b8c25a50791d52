package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrostock/agrostock-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EntryUC         *inventory.EntryUseCase
	ConsumeUC       *inventory.ConsumeUseCase
	StockUC         *inventory.StockUseCase
	ReconcileUC     *inventory.ReconcileUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	RechargeUC      *inventory.RechargeUseCase
	MovementUC      *inventory.MovementUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Entradas de inventario (lotes)
	entries := api.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Put("/:id", entryHandler.Update)
	entries.Delete("/:id", entryHandler.Delete)

	// Consumo FEFO y consultas de stock
	stockHandler := NewStockHandler(deps.ConsumeUC, deps.StockUC, deps.ReconcileUC, deps.ReplenishmentUC)
	api.Post("/inventory/consume", stockHandler.Consume)
	api.Get("/inventory/movements", NewMovementHandler(deps.MovementUC).ListByProduct)

	stock := api.Group("/stock")
	stock.Get("/valid", stockHandler.ValidStockByProduct)
	stock.Get("/valid/:productID", stockHandler.ValidStock)
	stock.Get("/expired", stockHandler.ListExpired)
	stock.Get("/expired/:productID", stockHandler.ExpiredStock)
	stock.Get("/expiring-soon", stockHandler.ListExpiringSoon)
	stock.Get("/mismatch/:productID", stockHandler.Mismatch)
	stock.Get("/low", stockHandler.LowStock)

	// Solicitudes de recarga
	recharges := api.Group("/recharges")
	rechargeHandler := NewRechargeHandler(deps.RechargeUC)
	recharges.Post("/", rechargeHandler.Record)
	recharges.Post("/resolve", rechargeHandler.Resolve)
	recharges.Get("/pending", rechargeHandler.Pending)
	recharges.Get("/resolved", rechargeHandler.Resolved)
}
