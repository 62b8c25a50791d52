package repository

import "github.com/agrostock/agrostock-api/internal/domain/entity"

// RechargeRequestRepository define el puerto de persistencia para solicitudes
// de recarga (señales de stock insuficiente del módulo de alimentación).
type RechargeRequestRepository interface {
	Create(request *entity.RechargeRequest) error
	Update(request *entity.RechargeRequest) error
	ListPending() ([]*entity.RechargeRequest, error)
	ListResolved() ([]*entity.RechargeRequest, error)
	// FindPendingByProduct busca una solicitud sin resolver del mismo producto
	// (o mismo name hint si productID está vacío) para deduplicar.
	FindPendingByProduct(productID, nameHint string) (*entity.RechargeRequest, error)
}
