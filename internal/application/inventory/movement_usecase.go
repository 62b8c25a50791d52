package inventory

import (
	"context"

	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// MovementUseCase consulta el historial de consumos. Solo lectura: los
// movimientos se escriben únicamente dentro de la transacción de consumo.
type MovementUseCase struct {
	movRepo repository.ConsumptionMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(movRepo repository.ConsumptionMovementRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo}
}

// ListByProduct lista los consumos de un producto, más recientes primero.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.ConsumptionMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

// ListByTransaction lista los movimientos de un mismo consumo.
func (uc *MovementUseCase) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.ConsumptionMovement, error) {
	if transactionID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByTransaction(transactionID)
}
