package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RechargeRequest registra una señal de "stock insuficiente" emitida por el
// módulo de alimentación. ProductID puede venir vacío si el emisor solo
// conocía el nombre del producto; en ese caso se resuelve por ProductNameHint.
type RechargeRequest struct {
	ID                 string
	ProductID          string // opcional
	ProductNameHint    string
	RequestedAt        time.Time
	RequiredQuantity   decimal.Decimal
	AvailableAtRequest decimal.Decimal // stock válido al momento de la solicitud
	OriginLotCode      string          // contexto de qué la disparó
	Resolved           bool
	ResolvedAt         *time.Time
	CreatedAt          time.Time
}
