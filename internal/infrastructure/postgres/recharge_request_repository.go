package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.RechargeRequestRepository = (*RechargeRequestRepo)(nil)

// RechargeRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type RechargeRequestRepo struct {
	q Querier
}

// NewRechargeRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRechargeRequestRepository(q Querier) *RechargeRequestRepo {
	return &RechargeRequestRepo{q: q}
}

const rechargeColumns = `
	id, product_id, product_name_hint, requested_at, required_quantity,
	available_at_request, origin_lot_code, resolved, resolved_at, created_at`

// Create persiste una nueva solicitud de recarga.
func (r *RechargeRequestRepo) Create(request *entity.RechargeRequest) error {
	query := `
		INSERT INTO recharge_requests (` + rechargeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, nullable(request.ProductID), nullable(request.ProductNameHint),
		request.RequestedAt, request.RequiredQuantity, request.AvailableAtRequest,
		nullable(request.OriginLotCode), request.Resolved, request.ResolvedAt, request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recharge request: %w", err)
	}
	return nil
}

// Update actualiza una solicitud (merge de duplicados o marca de resolución).
func (r *RechargeRequestRepo) Update(request *entity.RechargeRequest) error {
	query := `
		UPDATE recharge_requests SET
			product_id = $2, product_name_hint = $3, requested_at = $4,
			required_quantity = $5, available_at_request = $6, origin_lot_code = $7,
			resolved = $8, resolved_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, nullable(request.ProductID), nullable(request.ProductNameHint),
		request.RequestedAt, request.RequiredQuantity, request.AvailableAtRequest,
		nullable(request.OriginLotCode), request.Resolved, request.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update recharge request: %w", err)
	}
	return nil
}

// ListPending lista solicitudes sin resolver, más antiguas primero.
func (r *RechargeRequestRepo) ListPending() ([]*entity.RechargeRequest, error) {
	return r.list(false)
}

// ListResolved lista solicitudes resueltas (archivo).
func (r *RechargeRequestRepo) ListResolved() ([]*entity.RechargeRequest, error) {
	return r.list(true)
}

// FindPendingByProduct busca una pendiente del mismo producto, o del mismo
// name hint cuando el id no fue resuelto. nil si no hay.
func (r *RechargeRequestRepo) FindPendingByProduct(productID, nameHint string) (*entity.RechargeRequest, error) {
	query := `
		SELECT ` + rechargeColumns + `
		FROM recharge_requests
		WHERE resolved = false AND (
			($1 <> '' AND product_id = $1)
			OR ($1 = '' AND product_id IS NULL AND lower(product_name_hint) = lower($2))
		)
		ORDER BY requested_at DESC LIMIT 1`
	req, err := scanRecharge(r.q.QueryRow(context.Background(), query, productID, nameHint))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pending recharge: %w", err)
	}
	return req, nil
}

func (r *RechargeRequestRepo) list(resolved bool) ([]*entity.RechargeRequest, error) {
	query := `
		SELECT ` + rechargeColumns + `
		FROM recharge_requests WHERE resolved = $1
		ORDER BY requested_at ASC`
	rows, err := r.q.Query(context.Background(), query, resolved)
	if err != nil {
		return nil, fmt.Errorf("list recharge requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.RechargeRequest
	for rows.Next() {
		req, err := scanRecharge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recharge request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanRecharge(row pgx.Row) (*entity.RechargeRequest, error) {
	var req entity.RechargeRequest
	var productID, nameHint, originLot *string
	err := row.Scan(
		&req.ID, &productID, &nameHint, &req.RequestedAt, &req.RequiredQuantity,
		&req.AvailableAtRequest, &originLot, &req.Resolved, &req.ResolvedAt, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.ProductID = deref(productID)
	req.ProductNameHint = deref(nameHint)
	req.OriginLotCode = deref(originLot)
	return &req, nil
}
