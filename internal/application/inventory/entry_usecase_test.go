package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostock/agrostock-api/internal/application/inventory"
	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/infrastructure/memory"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

func newCatalog(products ...*entity.Product) *memory.ProductRepo {
	repo := memory.NewProductRepository()
	for _, p := range products {
		repo.Put(p)
	}
	return repo
}

func productoConcentrado() *entity.Product {
	min := decimal.NewFromInt(100)
	return &entity.Product{
		ID:           "prod-concentrado",
		Name:         "Concentrado Lechón",
		BaseUnit:     "kg",
		MinimumLevel: &min,
	}
}

func newEntryUC(products ...*entity.Product) (*inventory.EntryUseCase, *memory.EntryRepo) {
	entryRepo := memory.NewEntryRepository()
	uc := inventory.NewEntryUseCase(entryRepo, newCatalog(products...), inventory.NewProductLocker())
	return uc, entryRepo
}

// ── CreateEntry ───────────────────────────────────────────────────────────────

func TestCreateEntry_CalculaRecibidoYRestante(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())

	entry, err := uc.CreateEntry(context.Background(), inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		ControlUnit:           "bulto",
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.True(t, entry.BaseQuantityReceived.Equal(decimal.NewFromInt(100)), "4 bultos x 25 kg")
	assert.True(t, entry.BaseQuantityRemaining.Equal(entry.BaseQuantityReceived),
		"una entrada nueva arranca sin consumos")
	assert.True(t, entry.Active)
	assert.Equal(t, 1, entry.Version)
}

func TestCreateEntry_ValidaCantidadesPositivas(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())
	ctx := context.Background()

	_, err := uc.CreateEntry(ctx, inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		ContentPerControlUnit: decimal.Zero,
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateEntry(ctx, inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateEntry(ctx, inventory.EntryInputDTO{
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin producto no hay entrada")
}

func TestCreateEntry_ProductoInexistente(t *testing.T) {
	uc, _ := newEntryUC() // catálogo vacío

	_, err := uc.CreateEntry(context.Background(), inventory.EntryInputDTO{
		ProductID:             "fantasma",
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateEntry_CantidadesFraccionarias(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())

	entry, err := uc.CreateEntry(context.Background(), inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		ContentPerControlUnit: decimal.NewFromFloat(22.7),
		ControlUnitsReceived:  decimal.NewFromFloat(3.5),
	})

	require.NoError(t, err)
	assert.True(t, entry.BaseQuantityReceived.Equal(decimal.NewFromFloat(79.45)),
		"la aritmética decimal no pierde centavos de kilo")
}

// ── UpdateEntry ───────────────────────────────────────────────────────────────

func TestUpdateEntry_RecalculaYRecortaRestante(t *testing.T) {
	uc, entryRepo := newEntryUC(productoConcentrado())
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	// El empaque baja de 4 a 2 bultos: recibido pasa a 50 y el restante (100)
	// se recorta al nuevo tope.
	dos := decimal.NewFromInt(2)
	updated, err := uc.UpdateEntry(ctx, entry.ID, inventory.EntryPatchDTO{
		ControlUnitsReceived: &dos,
	})
	require.NoError(t, err)
	assert.True(t, updated.BaseQuantityReceived.Equal(decimal.NewFromInt(50)))
	assert.True(t, updated.BaseQuantityRemaining.Equal(decimal.NewFromInt(50)),
		"el restante nunca queda por encima del recibido")

	stored, err := entryRepo.GetByID(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version, "la versión avanza con la escritura")
}

func TestUpdateEntry_PatchParcialNoTocaElResto(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		BatchCode:             "L-001",
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	lote := "L-002"
	updated, err := uc.UpdateEntry(ctx, entry.ID, inventory.EntryPatchDTO{BatchCode: &lote})
	require.NoError(t, err)
	assert.Equal(t, "L-002", updated.BatchCode)
	assert.True(t, updated.BaseQuantityReceived.Equal(decimal.NewFromInt(100)))
	assert.True(t, updated.BaseQuantityRemaining.Equal(decimal.NewFromInt(100)))
}

func TestUpdateEntry_QuitarVencimiento(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())
	ctx := context.Background()

	exp := time.Now().AddDate(0, 1, 0)
	entry, err := uc.CreateEntry(ctx, inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		ExpirationDate:        &exp,
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	updated, err := uc.UpdateEntry(ctx, entry.ID, inventory.EntryPatchDTO{ClearExpiration: true})
	require.NoError(t, err)
	assert.Nil(t, updated.ExpirationDate, "la entrada pasa a no vencer nunca")
}

func TestUpdateEntry_Validaciones(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())
	ctx := context.Background()

	cero := decimal.Zero
	_, err := uc.UpdateEntry(ctx, "cualquiera", inventory.EntryPatchDTO{ContentPerControlUnit: &cero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateEntry(ctx, "no-existe", inventory.EntryPatchDTO{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── SoftDeleteEntry ───────────────────────────────────────────────────────────

func TestSoftDeleteEntry_MarcaInactivaYGuardaObservacion(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		Notes:                 "ingreso normal",
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	deleted, err := uc.SoftDeleteEntry(ctx, entry.ID, "bulto roto en bodega")
	require.NoError(t, err)
	assert.False(t, deleted.Active)
	assert.Equal(t, "ingreso normal\nbulto roto en bodega", deleted.Notes)
	assert.True(t, deleted.BaseQuantityRemaining.Equal(decimal.NewFromInt(100)),
		"el borrado lógico no toca las cantidades")
}

func TestSoftDeleteEntry_Idempotente(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, inventory.EntryInputDTO{
		ProductID:             "prod-concentrado",
		ContentPerControlUnit: decimal.NewFromInt(25),
		ControlUnitsReceived:  decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	first, err := uc.SoftDeleteEntry(ctx, entry.ID, "motivo uno")
	require.NoError(t, err)

	second, err := uc.SoftDeleteEntry(ctx, entry.ID, "motivo dos")
	require.NoError(t, err)
	assert.False(t, second.Active)
	assert.Equal(t, first.Notes, second.Notes, "el segundo borrado no agrega nada")
	assert.Equal(t, first.Version, second.Version)
}

func TestSoftDeleteEntry_NoExiste(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())
	_, err := uc.SoftDeleteEntry(context.Background(), "fantasma", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── GetEntry ──────────────────────────────────────────────────────────────────

func TestGetEntry_NoExiste(t *testing.T) {
	uc, _ := newEntryUC(productoConcentrado())
	_, err := uc.GetEntry(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
