package repository

import "github.com/agrostock/agrostock-api/internal/domain/entity"

// ConsumptionMovementRepository define el puerto de persistencia para el
// registro de consumos FEFO. Se escribe en la misma transacción que el
// descuento de las entradas: o ambos persisten o ninguno.
type ConsumptionMovementRepository interface {
	Create(movement *entity.ConsumptionMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.ConsumptionMovement, error)
	ListByTransaction(transactionID string) ([]*entity.ConsumptionMovement, error)
}
