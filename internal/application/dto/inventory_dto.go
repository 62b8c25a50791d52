package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
)

// Las cantidades internas se acumulan sin redondear; aquí, en el borde de
// presentación, se redondean a 2 decimales.

// CreateEntryRequest body para POST /api/entries.
type CreateEntryRequest struct {
	ProductID             string           `json:"product_id"`
	ProviderID            string           `json:"provider_id,omitempty"`
	BatchCode             string           `json:"batch_code,omitempty"`
	IntakeDate            *time.Time       `json:"intake_date,omitempty"`
	ExpirationDate        *time.Time       `json:"expiration_date,omitempty"`
	ControlUnit           string           `json:"control_unit,omitempty"`
	ContentPerControlUnit decimal.Decimal  `json:"content_per_control_unit"`
	ControlUnitsReceived  decimal.Decimal  `json:"control_units_received"`
	UnitCost              *decimal.Decimal `json:"unit_cost,omitempty"`
	CostPerControlUnit    *decimal.Decimal `json:"cost_per_control_unit,omitempty"`
	Notes                 string           `json:"notes,omitempty"`
}

// UpdateEntryRequest body para PUT /api/entries/:id. Campos nil = sin cambio.
type UpdateEntryRequest struct {
	ProviderID            *string          `json:"provider_id,omitempty"`
	BatchCode             *string          `json:"batch_code,omitempty"`
	IntakeDate            *time.Time       `json:"intake_date,omitempty"`
	ExpirationDate        *time.Time       `json:"expiration_date,omitempty"`
	ClearExpiration       bool             `json:"clear_expiration,omitempty"`
	ControlUnit           *string          `json:"control_unit,omitempty"`
	ContentPerControlUnit *decimal.Decimal `json:"content_per_control_unit,omitempty"`
	ControlUnitsReceived  *decimal.Decimal `json:"control_units_received,omitempty"`
	UnitCost              *decimal.Decimal `json:"unit_cost,omitempty"`
	CostPerControlUnit    *decimal.Decimal `json:"cost_per_control_unit,omitempty"`
	Notes                 *string          `json:"notes,omitempty"`
}

// DeleteEntryRequest body para DELETE /api/entries/:id.
type DeleteEntryRequest struct {
	Observation string `json:"observation,omitempty"`
}

// EntryResponse representación HTTP de una entrada de inventario.
type EntryResponse struct {
	ID                    string           `json:"id"`
	ProductID             string           `json:"product_id"`
	ProviderID            string           `json:"provider_id,omitempty"`
	BatchCode             string           `json:"batch_code,omitempty"`
	IntakeDate            time.Time        `json:"intake_date"`
	ExpirationDate        *time.Time       `json:"expiration_date,omitempty"`
	ControlUnit           string           `json:"control_unit,omitempty"`
	ContentPerControlUnit decimal.Decimal  `json:"content_per_control_unit"`
	ControlUnitsReceived  decimal.Decimal  `json:"control_units_received"`
	BaseQuantityReceived  decimal.Decimal  `json:"base_quantity_received"`
	BaseQuantityRemaining decimal.Decimal  `json:"base_quantity_remaining"`
	ControlUnitsRemaining decimal.Decimal  `json:"control_units_remaining"`
	UnitCost              *decimal.Decimal `json:"unit_cost,omitempty"`
	CostPerControlUnit    *decimal.Decimal `json:"cost_per_control_unit,omitempty"`
	Active                bool             `json:"active"`
	Notes                 string           `json:"notes,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// FromEntry mapea la entidad al DTO, redondeando cantidades a 2 decimales.
func FromEntry(e *entity.InventoryEntry) EntryResponse {
	return EntryResponse{
		ID:                    e.ID,
		ProductID:             e.ProductID,
		ProviderID:            e.ProviderID,
		BatchCode:             e.BatchCode,
		IntakeDate:            e.IntakeDate,
		ExpirationDate:        e.ExpirationDate,
		ControlUnit:           e.ControlUnit,
		ContentPerControlUnit: e.ContentPerControlUnit,
		ControlUnitsReceived:  e.ControlUnitsReceived,
		BaseQuantityReceived:  e.BaseQuantityReceived.Round(2),
		BaseQuantityRemaining: e.BaseQuantityRemaining.Round(2),
		ControlUnitsRemaining: e.ControlUnitsRemaining().Round(2),
		UnitCost:              e.UnitCost,
		CostPerControlUnit:    e.CostPerControlUnit,
		Active:                e.Active,
		Notes:                 e.Notes,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

// FromEntries mapea una lista de entradas.
func FromEntries(entries []*entity.InventoryEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}

// ConsumeRequest body para POST /api/inventory/consume.
type ConsumeRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Context   string          `json:"context,omitempty"`
}

// MovementDTO un descuento aplicado sobre una entrada durante el consumo.
type MovementDTO struct {
	EntryID  string          `json:"entry_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ConsumeResponse resultado del consumo FEFO. shortfall > 0 = cumplimiento
// parcial; el caller decide si pide recarga.
type ConsumeResponse struct {
	Consumed  decimal.Decimal `json:"consumed"`
	Shortfall decimal.Decimal `json:"shortfall"`
	Movements []MovementDTO   `json:"movements"`
}

// FromConsumptionResult mapea el resultado del motor FEFO.
func FromConsumptionResult(r *entity.ConsumptionResult) ConsumeResponse {
	movs := make([]MovementDTO, 0, len(r.Movements))
	for _, m := range r.Movements {
		movs = append(movs, MovementDTO{EntryID: m.EntryID, Quantity: m.Quantity.Round(2)})
	}
	return ConsumeResponse{
		Consumed:  r.Consumed.Round(2),
		Shortfall: r.Shortfall.Round(2),
		Movements: movs,
	}
}

// MovementHistoryDTO un consumo del historial.
type MovementHistoryDTO struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	EntryID       string          `json:"entry_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Context       string          `json:"context,omitempty"`
	Date          time.Time       `json:"date"`
}

// FromMovements mapea el historial de consumos.
func FromMovements(movements []*entity.ConsumptionMovement) []MovementHistoryDTO {
	out := make([]MovementHistoryDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, MovementHistoryDTO{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			EntryID:       m.EntryID,
			Quantity:      m.Quantity.Round(2),
			Context:       m.Context,
			Date:          m.Date,
		})
	}
	return out
}

// StockResponse stock agregado de un producto.
type StockResponse struct {
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	HasEntries *bool           `json:"has_entries,omitempty"`
}

// MismatchResponse resultado de la comparación contra el contador consolidado.
type MismatchResponse struct {
	ProductID    string          `json:"product_id"`
	ValidStock   decimal.Decimal `json:"valid_stock"`
	Consolidated decimal.Decimal `json:"consolidated"`
	Difference   decimal.Decimal `json:"difference"`
	Mismatch     bool            `json:"mismatch"`
}

// RecordRechargeRequest body para POST /api/recharges.
type RecordRechargeRequest struct {
	ProductID          string          `json:"product_id,omitempty"`
	ProductNameHint    string          `json:"product_name_hint,omitempty"`
	RequestedAt        *time.Time      `json:"requested_at,omitempty"`
	RequiredQuantity   decimal.Decimal `json:"required_quantity"`
	AvailableAtRequest decimal.Decimal `json:"available_at_request"`
	OriginLotCode      string          `json:"origin_lot_code,omitempty"`
}

// RechargeResponse representación HTTP de una solicitud de recarga.
type RechargeResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id,omitempty"`
	ProductNameHint    string          `json:"product_name_hint,omitempty"`
	RequestedAt        time.Time       `json:"requested_at"`
	RequiredQuantity   decimal.Decimal `json:"required_quantity"`
	AvailableAtRequest decimal.Decimal `json:"available_at_request"`
	OriginLotCode      string          `json:"origin_lot_code,omitempty"`
	Resolved           bool            `json:"resolved"`
	ResolvedAt         *time.Time      `json:"resolved_at,omitempty"`
}

// FromRecharge mapea la entidad al DTO.
func FromRecharge(r *entity.RechargeRequest) RechargeResponse {
	return RechargeResponse{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		ProductNameHint:    r.ProductNameHint,
		RequestedAt:        r.RequestedAt,
		RequiredQuantity:   r.RequiredQuantity.Round(2),
		AvailableAtRequest: r.AvailableAtRequest.Round(2),
		OriginLotCode:      r.OriginLotCode,
		Resolved:           r.Resolved,
		ResolvedAt:         r.ResolvedAt,
	}
}

// FromRecharges mapea una lista de solicitudes.
func FromRecharges(requests []*entity.RechargeRequest) []RechargeResponse {
	out := make([]RechargeResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, FromRecharge(r))
	}
	return out
}

// LowStockItemDTO un producto bajo su umbral mínimo en el reporte de reposición.
type LowStockItemDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	BaseUnit     string          `json:"base_unit"`
	Category     string          `json:"category"`
	ValidStock   decimal.Decimal `json:"valid_stock"`
	MinimumLevel decimal.Decimal `json:"minimum_level"`
	TargetLevel  decimal.Decimal `json:"target_level"`
	SuggestedQty decimal.Decimal `json:"suggested_qty"`
	HasEntries   bool            `json:"has_entries"`
	Priority     int             `json:"priority"`
}
