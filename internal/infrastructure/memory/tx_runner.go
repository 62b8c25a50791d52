package memory

import (
	"context"

	"github.com/agrostock/agrostock-api/internal/application/inventory"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner variante en memoria del runner transaccional. No hay transacción
// real que abortar: la exclusión por producto del caso de uso garantiza que
// los descuentos no se intercalen, y las escrituras parciales solo pueden
// ocurrir si un repo en memoria falla, cosa que no hace.
type TxRunner struct {
	entryRepo repository.EntryRepository
	movRepo   repository.ConsumptionMovementRepository
}

// NewTxRunner construye el runner sobre los repos en memoria.
func NewTxRunner(entryRepo repository.EntryRepository, movRepo repository.ConsumptionMovementRepository) *TxRunner {
	return &TxRunner{entryRepo: entryRepo, movRepo: movRepo}
}

// Run ejecuta fn con los repos compartidos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	entryRepo repository.EntryRepository,
	movRepo repository.ConsumptionMovementRepository,
) error) error {
	return fn(r.entryRepo, r.movRepo)
}
