package repository

import "github.com/shopspring/decimal"

// ConsolidatedStockReader define el puerto de solo lectura hacia el contador
// consolidado de stock, mantenido por otros módulos. El ledger lo compara
// contra su propio stock válido pero jamás lo escribe.
type ConsolidatedStockReader interface {
	Get(productID string) (decimal.Decimal, error)
}
