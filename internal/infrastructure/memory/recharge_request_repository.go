package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.RechargeRequestRepository = (*RechargeRequestRepo)(nil)

// RechargeRequestRepo solicitudes de recarga en memoria.
type RechargeRequestRepo struct {
	mu       sync.RWMutex
	requests map[string]*entity.RechargeRequest
}

// NewRechargeRequestRepository construye el repositorio vacío.
func NewRechargeRequestRepository() *RechargeRequestRepo {
	return &RechargeRequestRepo{requests: make(map[string]*entity.RechargeRequest)}
}

// Create guarda una copia de la solicitud.
func (r *RechargeRequestRepo) Create(request *entity.RechargeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; ok {
		return domain.ErrDuplicate
	}
	r.requests[request.ID] = cloneRecharge(request)
	return nil
}

// Update reemplaza la solicitud almacenada.
func (r *RechargeRequestRepo) Update(request *entity.RechargeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return domain.ErrNotFound
	}
	r.requests[request.ID] = cloneRecharge(request)
	return nil
}

// ListPending lista solicitudes sin resolver, más antiguas primero.
func (r *RechargeRequestRepo) ListPending() ([]*entity.RechargeRequest, error) {
	return r.list(false), nil
}

// ListResolved lista solicitudes resueltas.
func (r *RechargeRequestRepo) ListResolved() ([]*entity.RechargeRequest, error) {
	return r.list(true), nil
}

// FindPendingByProduct busca una pendiente del mismo producto o name hint.
func (r *RechargeRequestRepo) FindPendingByProduct(productID, nameHint string) (*entity.RechargeRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.requests {
		if req.Resolved {
			continue
		}
		if productID != "" && req.ProductID == productID {
			return cloneRecharge(req), nil
		}
		if productID == "" && req.ProductID == "" &&
			strings.EqualFold(req.ProductNameHint, nameHint) {
			return cloneRecharge(req), nil
		}
	}
	return nil, nil
}

func (r *RechargeRequestRepo) list(resolved bool) []*entity.RechargeRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.RechargeRequest
	for _, req := range r.requests {
		if req.Resolved == resolved {
			list = append(list, cloneRecharge(req))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].RequestedAt.Equal(list[j].RequestedAt) {
			return list[i].RequestedAt.Before(list[j].RequestedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func cloneRecharge(r *entity.RechargeRequest) *entity.RechargeRequest {
	c := *r
	if r.ResolvedAt != nil {
		t := *r.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}
