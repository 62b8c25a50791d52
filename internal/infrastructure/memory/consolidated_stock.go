package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.ConsolidatedStockReader = (*ConsolidatedStock)(nil)

// ConsolidatedStock contador consolidado en memoria. Set simula las
// escrituras que en el sistema real hacen otros módulos; el ledger solo lee.
type ConsolidatedStock struct {
	mu     sync.RWMutex
	totals map[string]decimal.Decimal
}

// NewConsolidatedStock construye el contador vacío.
func NewConsolidatedStock() *ConsolidatedStock {
	return &ConsolidatedStock{totals: make(map[string]decimal.Decimal)}
}

// Set fija el total consolidado de un producto.
func (c *ConsolidatedStock) Set(productID string, quantity decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totals[productID] = quantity
}

// Get devuelve el total consolidado del producto. Sin registro = 0.
func (c *ConsolidatedStock) Get(productID string) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totals[productID], nil
}
