package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// StockView abstrae una lectura de "cuánto stock hay" por producto. El sistema
// mantiene dos nociones actualizadas por caminos independientes: la derivada
// de entradas y el contador consolidado. Ninguna es autoritativa; solo se
// comparan para alertar, nunca se unifican.
type StockView interface {
	Stock(ctx context.Context, productID string) (decimal.Decimal, error)
}

// EntryDerivedStockView lee el stock válido derivado de las entradas.
type EntryDerivedStockView struct {
	calc *StockUseCase
}

// NewEntryDerivedStockView construye la vista derivada de entradas.
func NewEntryDerivedStockView(calc *StockUseCase) *EntryDerivedStockView {
	return &EntryDerivedStockView{calc: calc}
}

// Stock devuelve el stock válido según la calculadora.
func (v *EntryDerivedStockView) Stock(ctx context.Context, productID string) (decimal.Decimal, error) {
	return v.calc.ValidStock(ctx, productID)
}

// ConsolidatedStockView lee el contador consolidado externo (solo lectura).
type ConsolidatedStockView struct {
	reader repository.ConsolidatedStockReader
}

// NewConsolidatedStockView construye la vista del contador consolidado.
func NewConsolidatedStockView(reader repository.ConsolidatedStockReader) *ConsolidatedStockView {
	return &ConsolidatedStockView{reader: reader}
}

// Stock devuelve el total consolidado del producto.
func (v *ConsolidatedStockView) Stock(ctx context.Context, productID string) (decimal.Decimal, error) {
	return v.reader.Get(productID)
}
