package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.ConsumptionMovementRepository = (*ConsumptionMovementRepo)(nil)

// ConsumptionMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type ConsumptionMovementRepo struct {
	q Querier
}

// NewConsumptionMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionMovementRepository(q Querier) *ConsumptionMovementRepo {
	return &ConsumptionMovementRepo{q: q}
}

// Create persiste un movimiento de consumo.
func (r *ConsumptionMovementRepo) Create(movement *entity.ConsumptionMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO consumption_movements (id, transaction_id, product_id, entry_id, quantity, context, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.ProductID, movement.EntryID,
		movement.Quantity, nullable(movement.Context), movement.Date, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create consumption movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto con paginación.
func (r *ConsumptionMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ConsumptionMovement, error) {
	query := `
		SELECT id, transaction_id, product_id, entry_id, quantity, COALESCE(context, ''), date, created_at
		FROM consumption_movements
		WHERE product_id = $1
		ORDER BY date DESC, id ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByTransaction lista los movimientos de un mismo consumo.
func (r *ConsumptionMovementRepo) ListByTransaction(transactionID string) ([]*entity.ConsumptionMovement, error) {
	query := `
		SELECT id, transaction_id, product_id, entry_id, quantity, COALESCE(context, ''), date, created_at
		FROM consumption_movements
		WHERE transaction_id = $1
		ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list movements by transaction: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.ConsumptionMovement, error) {
	var list []*entity.ConsumptionMovement
	for rows.Next() {
		var m entity.ConsumptionMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.EntryID,
			&m.Quantity, &m.Context, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
