package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo comprable (alimento, medicamento) del catálogo.
// El ledger lo consume como referencia externa: solo lee id, unidad base y umbrales.
type Product struct {
	ID           string
	Name         string
	BaseUnit     string           // kg, ml, unidad
	MinimumLevel *decimal.Decimal // umbral de stock mínimo; nil = sin umbral
	MaximumLevel *decimal.Decimal // umbral de stock máximo; nil = sin umbral
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMinimum indica si el producto tiene umbral mínimo configurado.
func (p *Product) HasMinimum() bool {
	return p.MinimumLevel != nil
}
