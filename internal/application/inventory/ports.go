package inventory

import (
	"context"

	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el descuento de entradas y el
// registro de movimientos persistan de forma atómica (o todo o nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entryRepo repository.EntryRepository,
		movRepo repository.ConsumptionMovementRepository,
	) error) error
}
