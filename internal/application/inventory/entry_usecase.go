package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// maxConflictRetries reintentos internos ante domain.ErrConflict antes de
// devolver el error al caller. Los conflictos son esperables bajo carga.
const maxConflictRetries = 3

// EntryUseCase implementa el CRUD de entradas de inventario (ingresos físicos)
// por producto. Valida contra el catálogo y serializa escrituras por producto.
// No reconcilia el contador consolidado: ese contador es de otro módulo y la
// costura queda documentada a propósito.
type EntryUseCase struct {
	entryRepo   repository.EntryRepository
	productRepo repository.ProductRepository
	locker      *ProductLocker
	now         func() time.Time
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(
	entryRepo repository.EntryRepository,
	productRepo repository.ProductRepository,
	locker *ProductLocker,
) *EntryUseCase {
	return &EntryUseCase{
		entryRepo:   entryRepo,
		productRepo: productRepo,
		locker:      locker,
		now:         time.Now,
	}
}

// EntryInputDTO entrada para crear un ingreso de inventario.
type EntryInputDTO struct {
	ProductID             string
	ProviderID            string
	BatchCode             string
	IntakeDate            *time.Time // nil = ahora
	ExpirationDate        *time.Time // nil = no vence
	ControlUnit           string
	ContentPerControlUnit decimal.Decimal
	ControlUnitsReceived  decimal.Decimal
	UnitCost              *decimal.Decimal
	CostPerControlUnit    *decimal.Decimal
	Notes                 string
}

// EntryPatchDTO campos modificables de una entrada; nil = sin cambio.
type EntryPatchDTO struct {
	ProviderID            *string
	BatchCode             *string
	IntakeDate            *time.Time
	ExpirationDate        *time.Time
	ClearExpiration       bool // true: quitar fecha de vencimiento
	ControlUnit           *string
	ContentPerControlUnit *decimal.Decimal
	ControlUnitsReceived  *decimal.Decimal
	UnitCost              *decimal.Decimal
	CostPerControlUnit    *decimal.Decimal
	Notes                 *string
}

// CreateEntry valida y persiste un nuevo ingreso. BaseQuantityReceived se
// calcula aquí y BaseQuantityRemaining arranca igual al recibido.
// Falla con ErrInvalidInput si las cantidades no son positivas y con
// ErrNotFound si el producto no existe en el catálogo.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input EntryInputDTO) (*entity.InventoryEntry, error) {
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.ContentPerControlUnit.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !input.ControlUnitsReceived.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	intake := now
	if input.IntakeDate != nil {
		intake = *input.IntakeDate
	}
	received := input.ContentPerControlUnit.Mul(input.ControlUnitsReceived)

	entry := &entity.InventoryEntry{
		ID:                    uuid.New().String(),
		ProductID:             input.ProductID,
		ProviderID:            input.ProviderID,
		BatchCode:             input.BatchCode,
		IntakeDate:            intake,
		ExpirationDate:        input.ExpirationDate,
		ControlUnit:           input.ControlUnit,
		ContentPerControlUnit: input.ContentPerControlUnit,
		ControlUnitsReceived:  input.ControlUnitsReceived,
		BaseQuantityReceived:  received,
		BaseQuantityRemaining: received,
		UnitCost:              input.UnitCost,
		CostPerControlUnit:    input.CostPerControlUnit,
		Active:                true,
		Notes:                 input.Notes,
		Version:               1,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	unlock := uc.locker.Lock(input.ProductID)
	defer unlock()

	if err := uc.entryRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry aplica un patch sobre la entrada. Si cambian las cantidades de
// empaque recalcula BaseQuantityReceived y recorta BaseQuantityRemaining al
// nuevo recibido (nunca puede quedar por encima).
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, id string, patch EntryPatchDTO) (*entity.InventoryEntry, error) {
	if patch.ContentPerControlUnit != nil && !patch.ContentPerControlUnit.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if patch.ControlUnitsReceived != nil && !patch.ControlUnitsReceived.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.InventoryEntry
	err := uc.withRetry(func() error {
		entry, err := uc.entryRepo.GetByID(id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}

		unlock := uc.locker.Lock(entry.ProductID)
		defer unlock()

		applyPatch(entry, patch)

		entry.BaseQuantityReceived = entry.ContentPerControlUnit.Mul(entry.ControlUnitsReceived)
		entry.BaseQuantityRemaining = decimal.Min(entry.BaseQuantityRemaining, entry.BaseQuantityReceived)
		entry.UpdatedAt = uc.now()

		if err := uc.entryRepo.Update(entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDeleteEntry marca la entrada como inactiva y agrega la observación a las
// notas. No toca BaseQuantityRemaining (la auditoría histórica se conserva) ni
// el contador consolidado (es de otro módulo). Idempotente: borrar dos veces
// devuelve la entrada ya inactiva sin cambios.
func (uc *EntryUseCase) SoftDeleteEntry(ctx context.Context, id, observation string) (*entity.InventoryEntry, error) {
	var deleted *entity.InventoryEntry
	err := uc.withRetry(func() error {
		entry, err := uc.entryRepo.GetByID(id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if !entry.Active {
			deleted = entry
			return nil
		}

		unlock := uc.locker.Lock(entry.ProductID)
		defer unlock()

		entry.Active = false
		if observation != "" {
			if entry.Notes != "" {
				entry.Notes += "\n"
			}
			entry.Notes += observation
		}
		entry.UpdatedAt = uc.now()

		if err := uc.entryRepo.Update(entry); err != nil {
			return err
		}
		deleted = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// GetEntry devuelve una entrada por id.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*entity.InventoryEntry, error) {
	entry, err := uc.entryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// ListByProduct lista las entradas de un producto.
func (uc *EntryUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryEntry, error) {
	return uc.entryRepo.ListByProduct(productID)
}

// ListAll lista todas las entradas.
func (uc *EntryUseCase) ListAll(ctx context.Context) ([]*entity.InventoryEntry, error) {
	return uc.entryRepo.ListAll()
}

// withRetry reintenta fn ante conflictos de versión (bloqueo optimista).
func (uc *EntryUseCase) withRetry(fn func() error) error {
	var err error
	for i := 0; i < maxConflictRetries; i++ {
		err = fn()
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	return err
}

func applyPatch(entry *entity.InventoryEntry, patch EntryPatchDTO) {
	if patch.ProviderID != nil {
		entry.ProviderID = *patch.ProviderID
	}
	if patch.BatchCode != nil {
		entry.BatchCode = *patch.BatchCode
	}
	if patch.IntakeDate != nil {
		entry.IntakeDate = *patch.IntakeDate
	}
	if patch.ClearExpiration {
		entry.ExpirationDate = nil
	} else if patch.ExpirationDate != nil {
		entry.ExpirationDate = patch.ExpirationDate
	}
	if patch.ControlUnit != nil {
		entry.ControlUnit = *patch.ControlUnit
	}
	if patch.ContentPerControlUnit != nil {
		entry.ContentPerControlUnit = *patch.ContentPerControlUnit
	}
	if patch.ControlUnitsReceived != nil {
		entry.ControlUnitsReceived = *patch.ControlUnitsReceived
	}
	if patch.UnitCost != nil {
		entry.UnitCost = patch.UnitCost
	}
	if patch.CostPerControlUnit != nil {
		entry.CostPerControlUnit = patch.CostPerControlUnit
	}
	if patch.Notes != nil {
		entry.Notes = *patch.Notes
	}
}
