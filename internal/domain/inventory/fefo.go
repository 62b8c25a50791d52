package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
)

// EntryDraw es el plan de descuento sobre una entrada concreta.
type EntryDraw struct {
	EntryID string
	Amount  decimal.Decimal
}

// FEFOPlan es el resultado de planear un consumo First-Expiring-First-Out:
// cuánto descontar de cada entrada, total consumible y faltante.
type FEFOPlan struct {
	Draws     []EntryDraw
	Consumed  decimal.Decimal
	Shortfall decimal.Decimal
}

// SortFEFO ordena entradas para consumo FEFO: vencimiento ascendente, las
// entradas sin vencimiento al final (vencen "en infinito"); empates por fecha
// de ingreso ascendente y luego por id para que el orden sea determinista.
func SortFEFO(entries []*entity.InventoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.ExpirationDate == nil && b.ExpirationDate != nil:
			return false
		case a.ExpirationDate != nil && b.ExpirationDate == nil:
			return true
		case a.ExpirationDate != nil && b.ExpirationDate != nil:
			if !a.ExpirationDate.Equal(*b.ExpirationDate) {
				return a.ExpirationDate.Before(*b.ExpirationDate)
			}
		}
		if !a.IntakeDate.Equal(b.IntakeDate) {
			return a.IntakeDate.Before(b.IntakeDate)
		}
		return a.ID < b.ID
	})
}

// PlanConsumption recorre las entradas válidas en orden FEFO y arma el plan
// greedy de descuento. No muta las entradas: el caller aplica el plan dentro
// de su transacción. Shortfall queda en cero si el stock alcanza.
func PlanConsumption(entries []*entity.InventoryEntry, quantity decimal.Decimal, today time.Time) FEFOPlan {
	valid := make([]*entity.InventoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsValid(today) {
			valid = append(valid, e)
		}
	}
	SortFEFO(valid)

	plan := FEFOPlan{Consumed: decimal.Zero, Shortfall: quantity}
	for _, e := range valid {
		if plan.Shortfall.LessThanOrEqual(decimal.Zero) {
			break
		}
		take := decimal.Min(plan.Shortfall, e.BaseQuantityRemaining)
		if take.LessThanOrEqual(decimal.Zero) {
			continue
		}
		plan.Draws = append(plan.Draws, EntryDraw{EntryID: e.ID, Amount: take})
		plan.Consumed = plan.Consumed.Add(take)
		plan.Shortfall = plan.Shortfall.Sub(take)
	}
	return plan
}
