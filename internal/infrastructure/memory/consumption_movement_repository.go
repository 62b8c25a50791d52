package memory

import (
	"sync"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.ConsumptionMovementRepository = (*ConsumptionMovementRepo)(nil)

// ConsumptionMovementRepo registro de consumos en memoria, en orden de llegada.
type ConsumptionMovementRepo struct {
	mu        sync.RWMutex
	movements []*entity.ConsumptionMovement
}

// NewConsumptionMovementRepository construye el registro vacío.
func NewConsumptionMovementRepository() *ConsumptionMovementRepo {
	return &ConsumptionMovementRepo{}
}

// Create agrega el movimiento al registro.
func (r *ConsumptionMovementRepo) Create(movement *entity.ConsumptionMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *movement
	r.movements = append(r.movements, &c)
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *ConsumptionMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ConsumptionMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var filtered []*entity.ConsumptionMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].ProductID == productID {
			c := *r.movements[i]
			filtered = append(filtered, &c)
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// ListByTransaction lista los movimientos de un mismo consumo.
func (r *ConsumptionMovementRepo) ListByTransaction(transactionID string) ([]*entity.ConsumptionMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.ConsumptionMovement
	for _, m := range r.movements {
		if m.TransactionID == transactionID {
			c := *m
			list = append(list, &c)
		}
	}
	return list, nil
}
