package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryEntry representa un ingreso físico (lote/partida) de un producto.
// Cada entrada lleva su propia fecha de vencimiento, conversión de unidades y
// cantidad restante. El stock válido de un producto se deriva de sus entradas,
// nunca se materializa dentro de la entrada.
type InventoryEntry struct {
	ID                    string
	ProductID             string
	ProviderID            string // proveedor opcional
	BatchCode             string // código de lote libre
	IntakeDate            time.Time
	ExpirationDate        *time.Time // nil = no vence nunca
	ControlUnit           string     // unidad de empaque (bulto, frasco); solo informativa
	ContentPerControlUnit decimal.Decimal
	ControlUnitsReceived  decimal.Decimal
	BaseQuantityReceived  decimal.Decimal // derivado: ContentPerControlUnit * ControlUnitsReceived
	BaseQuantityRemaining decimal.Decimal
	UnitCost              *decimal.Decimal // costo por unidad base
	CostPerControlUnit    *decimal.Decimal // costo por unidad de empaque; derivable del anterior
	Active                bool
	Notes                 string
	Version               int // bloqueo optimista
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ControlUnitsRemaining devuelve las unidades de empaque restantes,
// derivadas de BaseQuantityRemaining para no mantener dos contadores.
func (e *InventoryEntry) ControlUnitsRemaining() decimal.Decimal {
	if e.ContentPerControlUnit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return e.BaseQuantityRemaining.Div(e.ContentPerControlUnit)
}

// IsExpired indica si la entrada está vencida respecto a hoy.
// Independiente de Active y de la cantidad restante (verdad histórica, para reportes).
func (e *InventoryEntry) IsExpired(today time.Time) bool {
	if e.ExpirationDate == nil {
		return false
	}
	return dateOnly(*e.ExpirationDate).Before(dateOnly(today))
}

// IsExpiringSoon indica si la entrada vence dentro de los próximos withinDays días
// (hoy inclusive). Entradas sin vencimiento nunca están por vencer.
func (e *InventoryEntry) IsExpiringSoon(today time.Time, withinDays int) bool {
	if e.ExpirationDate == nil {
		return false
	}
	exp := dateOnly(*e.ExpirationDate)
	from := dateOnly(today)
	to := from.AddDate(0, 0, withinDays)
	return !exp.Before(from) && !exp.After(to)
}

// IsValid indica si la entrada aporta stock utilizable:
// activa, no vencida y con cantidad restante mayor a cero.
func (e *InventoryEntry) IsValid(today time.Time) bool {
	return e.Active && !e.IsExpired(today) && e.BaseQuantityRemaining.GreaterThan(decimal.Zero)
}

// EffectiveUnitCost devuelve el costo por unidad base, derivándolo del costo
// por empaque cuando solo este fue informado. nil si no hay costo alguno.
func (e *InventoryEntry) EffectiveUnitCost() *decimal.Decimal {
	if e.UnitCost != nil {
		return e.UnitCost
	}
	if e.CostPerControlUnit != nil && e.ContentPerControlUnit.GreaterThan(decimal.Zero) {
		c := e.CostPerControlUnit.Div(e.ContentPerControlUnit)
		return &c
	}
	return nil
}

// dateOnly trunca a fecha calendario (los vencimientos se comparan por día, no por hora).
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
