package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.ConsolidatedStockReader = (*ConsolidatedStockRepo)(nil)

// ConsolidatedStockRepo lectura del contador consolidado de stock. La tabla
// la escriben otros módulos (ajustes manuales, otros caminos de escritura);
// el ledger solo la lee para detectar deriva.
type ConsolidatedStockRepo struct {
	q Querier
}

// NewConsolidatedStockRepository construye el adaptador de solo lectura.
func NewConsolidatedStockRepository(q Querier) *ConsolidatedStockRepo {
	return &ConsolidatedStockRepo{q: q}
}

// Get devuelve el total consolidado del producto. Producto sin fila = 0.
func (r *ConsolidatedStockRepo) Get(productID string) (decimal.Decimal, error) {
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT quantity FROM consolidated_stock WHERE product_id = $1`,
		productID,
	).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("get consolidated stock: %w", err)
	}
	return qty, nil
}
