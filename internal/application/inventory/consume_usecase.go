package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	domaininv "github.com/agrostock/agrostock-api/internal/domain/inventory"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// ConsumeUseCase aplica consumos First-Expiring-First-Out sobre las entradas
// de un producto. El consumo greedy siempre se ejecuta y el faltante se
// reporta en el resultado: quedarse corto no es un error, es un dato con el
// que el caller decide (aceptar parcial, pedir recarga o abortar).
type ConsumeUseCase struct {
	txRunner TxRunner
	locker   *ProductLocker
	now      func() time.Time
}

// NewConsumeUseCase construye el caso de uso.
func NewConsumeUseCase(txRunner TxRunner, locker *ProductLocker) *ConsumeUseCase {
	return &ConsumeUseCase{
		txRunner: txRunner,
		locker:   locker,
		now:      time.Now,
	}
}

// ConsumeInputDTO entrada para un consumo FEFO.
type ConsumeInputDTO struct {
	ProductID string
	Quantity  decimal.Decimal
	Context   string // origen: plan de alimentación, lote, etc.
}

// Consume descuenta input.Quantity de las entradas válidas del producto en
// orden FEFO (vencimiento ascendente, sin vencimiento al final, empates por
// ingreso y luego id). Corre bajo exclusión por producto y dentro de una
// transacción: el descuento y sus movimientos persisten juntos o no persisten.
// Cantidad cero o negativa es ErrInvalidInput. Un producto sin entradas
// válidas devuelve consumed=0 y shortfall=cantidad pedida, sin error.
func (uc *ConsumeUseCase) Consume(ctx context.Context, input ConsumeInputDTO) (*entity.ConsumptionResult, error) {
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	unlock := uc.locker.Lock(input.ProductID)
	defer unlock()

	var result *entity.ConsumptionResult
	var err error
	// Los conflictos de versión bajo contención son esperables, no bugs:
	// se reintenta la transacción completa un número acotado de veces.
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		result, err = uc.consumeOnce(ctx, input)
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ConsumeUseCase) consumeOnce(ctx context.Context, input ConsumeInputDTO) (*entity.ConsumptionResult, error) {
	now := uc.now()
	txID := uuid.New().String()
	var result *entity.ConsumptionResult

	err := uc.txRunner.Run(ctx, func(
		entryRepo repository.EntryRepository,
		movRepo repository.ConsumptionMovementRepository,
	) error {
		entries, err := entryRepo.ListByProduct(input.ProductID)
		if err != nil {
			return err
		}

		plan := domaininv.PlanConsumption(entries, input.Quantity, now)

		byID := make(map[string]*entity.InventoryEntry, len(entries))
		for _, e := range entries {
			byID[e.ID] = e
		}

		movements := make([]entity.ConsumptionMovement, 0, len(plan.Draws))
		for _, draw := range plan.Draws {
			e := byID[draw.EntryID]
			e.BaseQuantityRemaining = e.BaseQuantityRemaining.Sub(draw.Amount)
			e.UpdatedAt = now
			if err := entryRepo.Update(e); err != nil {
				return err
			}

			mov := entity.ConsumptionMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				ProductID:     input.ProductID,
				EntryID:       draw.EntryID,
				Quantity:      draw.Amount,
				Context:       input.Context,
				Date:          now,
				CreatedAt:     now,
			}
			if err := movRepo.Create(&mov); err != nil {
				return err
			}
			movements = append(movements, mov)
		}

		result = &entity.ConsumptionResult{
			Consumed:  plan.Consumed,
			Shortfall: plan.Shortfall,
			Movements: movements,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
