package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación de EntryRepository sobre PostgreSQL (usable con pool o tx).
// La columna version respalda el bloqueo optimista: Update solo escribe si la
// versión leída sigue vigente.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

const entryColumns = `
	id, product_id, provider_id, batch_code, intake_date, expiration_date,
	control_unit, content_per_control_unit, control_units_received,
	base_quantity_received, base_quantity_remaining, unit_cost,
	cost_per_control_unit, active, notes, version, created_at, updated_at`

// Create persiste una nueva entrada de inventario.
func (r *EntryRepo) Create(entry *entity.InventoryEntry) error {
	query := `
		INSERT INTO inventory_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, nullable(entry.ProviderID), nullable(entry.BatchCode),
		entry.IntakeDate, entry.ExpirationDate, nullable(entry.ControlUnit),
		entry.ContentPerControlUnit, entry.ControlUnitsReceived,
		entry.BaseQuantityReceived, entry.BaseQuantityRemaining,
		entry.UnitCost, entry.CostPerControlUnit,
		entry.Active, entry.Notes, entry.Version, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por id. nil si no existe.
func (r *EntryRepo) GetByID(id string) (*entity.InventoryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM inventory_entries WHERE id = $1`
	e, err := scanEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// Update escribe la entrada si la versión no cambió desde la lectura;
// domain.ErrConflict si otra escritura ganó la carrera.
func (r *EntryRepo) Update(entry *entity.InventoryEntry) error {
	query := `
		UPDATE inventory_entries SET
			provider_id = $2, batch_code = $3, intake_date = $4, expiration_date = $5,
			control_unit = $6, content_per_control_unit = $7, control_units_received = $8,
			base_quantity_received = $9, base_quantity_remaining = $10,
			unit_cost = $11, cost_per_control_unit = $12,
			active = $13, notes = $14, version = version + 1, updated_at = $15
		WHERE id = $1 AND version = $16`
	cmd, err := r.q.Exec(context.Background(), query,
		entry.ID, nullable(entry.ProviderID), nullable(entry.BatchCode),
		entry.IntakeDate, entry.ExpirationDate, nullable(entry.ControlUnit),
		entry.ContentPerControlUnit, entry.ControlUnitsReceived,
		entry.BaseQuantityReceived, entry.BaseQuantityRemaining,
		entry.UnitCost, entry.CostPerControlUnit,
		entry.Active, entry.Notes, entry.UpdatedAt, entry.Version,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// Fila inexistente o versión vencida; distinguir para el caller.
		exists, err := r.exists(entry.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	entry.Version++
	return nil
}

// ListByProduct lista las entradas de un producto, ordenadas para FEFO por el
// índice (product_id, expiration_date): vencimiento ascendente con NULL al final.
func (r *EntryRepo) ListByProduct(productID string) ([]*entity.InventoryEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM inventory_entries
		WHERE product_id = $1
		ORDER BY expiration_date ASC NULLS LAST, intake_date ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list entries by product: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListAll lista todas las entradas.
func (r *EntryRepo) ListAll() ([]*entity.InventoryEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM inventory_entries
		ORDER BY product_id ASC, expiration_date ASC NULLS LAST, intake_date ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// HasAnyByProduct indica si el producto tiene al menos una entrada registrada,
// sin importar estado: distingue "nunca abastecido" de "agotado".
func (r *EntryRepo) HasAnyByProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM inventory_entries WHERE product_id = $1)`,
		productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has entries by product: %w", err)
	}
	return exists, nil
}

func (r *EntryRepo) exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM inventory_entries WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("entry exists: %w", err)
	}
	return exists, nil
}

func scanEntry(row pgx.Row) (*entity.InventoryEntry, error) {
	var e entity.InventoryEntry
	var providerID, batchCode, controlUnit *string
	err := row.Scan(
		&e.ID, &e.ProductID, &providerID, &batchCode, &e.IntakeDate, &e.ExpirationDate,
		&controlUnit, &e.ContentPerControlUnit, &e.ControlUnitsReceived,
		&e.BaseQuantityReceived, &e.BaseQuantityRemaining, &e.UnitCost,
		&e.CostPerControlUnit, &e.Active, &e.Notes, &e.Version, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.ProviderID = deref(providerID)
	e.BatchCode = deref(batchCode)
	e.ControlUnit = deref(controlUnit)
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]*entity.InventoryEntry, error) {
	var list []*entity.InventoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
