package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionMovement registra cuánto se descontó de una entrada concreta
// durante un consumo FEFO. Varias filas comparten TransactionID cuando un
// mismo consumo tocó varias entradas.
type ConsumptionMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	EntryID       string
	Quantity      decimal.Decimal // siempre positiva, en unidad base
	Context       string          // origen del consumo (plan de alimentación, lote, etc.)
	Date          time.Time
	CreatedAt     time.Time
}

// ConsumptionResult resultado de un consumo FEFO. Shortfall > 0 señala
// cumplimiento parcial; no es un error, el caller decide qué hacer.
type ConsumptionResult struct {
	Consumed  decimal.Decimal
	Shortfall decimal.Decimal
	Movements []ConsumptionMovement
}
