package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	domaininv "github.com/agrostock/agrostock-api/internal/domain/inventory"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// RechargeUseCase registra señales de "stock insuficiente" del módulo de
// alimentación y las marca resueltas cuando el producto recupera stock válido.
// Si una solicitud no se puede resolver ni por id ni por nombre, queda
// pendiente para siempre: se prefiere visibilidad para el operador antes que
// descartarla en silencio.
type RechargeUseCase struct {
	rechargeRepo repository.RechargeRequestRepository
	productRepo  repository.ProductRepository
	calc         *StockUseCase
	now          func() time.Time
}

// NewRechargeUseCase construye el caso de uso.
func NewRechargeUseCase(
	rechargeRepo repository.RechargeRequestRepository,
	productRepo repository.ProductRepository,
	calc *StockUseCase,
) *RechargeUseCase {
	return &RechargeUseCase{
		rechargeRepo: rechargeRepo,
		productRepo:  productRepo,
		calc:         calc,
		now:          time.Now,
	}
}

// RechargeInputDTO entrada para registrar una solicitud de recarga.
type RechargeInputDTO struct {
	ProductID          string // opcional: el emisor puede no haber resuelto el id
	ProductNameHint    string
	RequestedAt        *time.Time // nil = ahora
	RequiredQuantity   decimal.Decimal
	AvailableAtRequest decimal.Decimal
	OriginLotCode      string
}

// Record registra la solicitud. Si ya existe una sin resolver para el mismo
// producto (o mismo name hint sin id), se fusionan en vez de duplicar:
// queda el RequestedAt más reciente y la mayor RequiredQuantity vista.
func (uc *RechargeUseCase) Record(ctx context.Context, input RechargeInputDTO) (*entity.RechargeRequest, error) {
	if input.ProductID == "" && input.ProductNameHint == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.RequiredQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	requestedAt := now
	if input.RequestedAt != nil {
		requestedAt = *input.RequestedAt
	}

	existing, err := uc.rechargeRepo.FindPendingByProduct(input.ProductID, input.ProductNameHint)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if requestedAt.After(existing.RequestedAt) {
			existing.RequestedAt = requestedAt
			existing.AvailableAtRequest = input.AvailableAtRequest
			if input.OriginLotCode != "" {
				existing.OriginLotCode = input.OriginLotCode
			}
		}
		existing.RequiredQuantity = decimal.Max(existing.RequiredQuantity, input.RequiredQuantity)
		if err := uc.rechargeRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	request := &entity.RechargeRequest{
		ID:                 uuid.New().String(),
		ProductID:          input.ProductID,
		ProductNameHint:    input.ProductNameHint,
		RequestedAt:        requestedAt,
		RequiredQuantity:   input.RequiredQuantity,
		AvailableAtRequest: input.AvailableAtRequest,
		OriginLotCode:      input.OriginLotCode,
		CreatedAt:          now,
	}
	if err := uc.rechargeRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

// ResolvePending recorre las solicitudes pendientes, resuelve el producto por
// id o por coincidencia de nombre (insensible a mayúsculas y acentos) y marca
// resueltas las que ya tienen stock válido positivo. Idempotente y sin otros
// efectos: solo mueve solicitudes de pendiente a resuelta.
func (uc *RechargeUseCase) ResolvePending(ctx context.Context) (int, error) {
	pending, err := uc.rechargeRepo.ListPending()
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	resolved := 0
	for _, req := range pending {
		productID := req.ProductID
		if productID == "" {
			productID, err = uc.resolveByName(req.ProductNameHint)
			if err != nil {
				return resolved, err
			}
			if productID == "" {
				// Irresoluble: queda pendiente, visible al operador.
				continue
			}
		}

		stock, err := uc.calc.ValidStock(ctx, productID)
		if err != nil {
			return resolved, err
		}
		if !stock.GreaterThan(decimal.Zero) {
			continue
		}

		now := uc.now()
		req.ProductID = productID
		req.Resolved = true
		req.ResolvedAt = &now
		if err := uc.rechargeRepo.Update(req); err != nil {
			return resolved, err
		}
		resolved++
	}
	return resolved, nil
}

// Pending devuelve las solicitudes sin resolver.
func (uc *RechargeUseCase) Pending(ctx context.Context) ([]*entity.RechargeRequest, error) {
	return uc.rechargeRepo.ListPending()
}

// Resolved devuelve las solicitudes ya resueltas (archivo, no se mutan más).
func (uc *RechargeUseCase) Resolved(ctx context.Context) ([]*entity.RechargeRequest, error) {
	return uc.rechargeRepo.ListResolved()
}

func (uc *RechargeUseCase) resolveByName(hint string) (string, error) {
	if hint == "" {
		return "", nil
	}
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return "", err
	}
	for _, p := range products {
		if domaininv.NameMatches(p.Name, hint) {
			return p.ID, nil
		}
	}
	return "", nil
}
