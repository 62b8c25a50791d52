package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostock/agrostock-api/internal/application/inventory"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/infrastructure/memory"
)

func seedStockEntry(t *testing.T, repo *memory.EntryRepo, id, productID string, expInDays *int, remaining float64, active bool) {
	t.Helper()
	var exp *time.Time
	if expInDays != nil {
		e := time.Now().AddDate(0, 0, *expInDays)
		exp = &e
	}
	err := repo.Create(&entity.InventoryEntry{
		ID:                    id,
		ProductID:             productID,
		IntakeDate:            time.Now().AddDate(0, 0, -10),
		ExpirationDate:        exp,
		ContentPerControlUnit: decimal.NewFromInt(1),
		BaseQuantityReceived:  decimal.NewFromFloat(remaining),
		BaseQuantityRemaining: decimal.NewFromFloat(remaining),
		Active:                active,
		Version:               1,
	})
	require.NoError(t, err)
}

func days(d int) *int { return &d }

func TestValidStock_SoloEntradasValidas(t *testing.T) {
	repo := memory.NewEntryRepository()
	seedStockEntry(t, repo, "ok1", "p1", days(30), 50, true)
	seedStockEntry(t, repo, "ok2", "p1", nil, 30, true) // sin vencimiento cuenta
	seedStockEntry(t, repo, "vencida", "p1", days(-1), 100, true)
	seedStockEntry(t, repo, "inactiva", "p1", days(30), 100, false)
	seedStockEntry(t, repo, "agotada", "p1", days(30), 0, true)
	seedStockEntry(t, repo, "otro", "p2", days(30), 999, true)

	uc := inventory.NewStockUseCase(repo, 0)
	stock, err := uc.ValidStock(context.Background(), "p1")

	require.NoError(t, err)
	assert.True(t, stock.Equal(decimal.NewFromInt(80)),
		"solo suman las activas, no vencidas y con restante")
}

func TestValidStock_ProductoSinEntradas(t *testing.T) {
	uc := inventory.NewStockUseCase(memory.NewEntryRepository(), 0)

	stock, err := uc.ValidStock(context.Background(), "nunca-abastecido")
	require.NoError(t, err)
	assert.True(t, stock.IsZero(), "sin entradas el stock es 0, no un error")

	has, err := uc.HasAnyEntries(context.Background(), "nunca-abastecido")
	require.NoError(t, err)
	assert.False(t, has, "HasAnyEntries distingue 'nunca abastecido' de 'agotado'")
}

func TestValidStockByProduct_EquivaleAlCalculoIndividual(t *testing.T) {
	repo := memory.NewEntryRepository()
	seedStockEntry(t, repo, "a", "p1", days(30), 50, true)
	seedStockEntry(t, repo, "b", "p1", days(-1), 40, true)
	seedStockEntry(t, repo, "c", "p2", days(10), 25.5, true)

	uc := inventory.NewStockUseCase(repo, 0)
	ctx := context.Background()

	batch, err := uc.ValidStockByProduct(ctx)
	require.NoError(t, err)

	for _, productID := range []string{"p1", "p2"} {
		individual, err := uc.ValidStock(ctx, productID)
		require.NoError(t, err)
		assert.True(t, batch[productID].Equal(individual),
			"la variante batch debe coincidir con el cálculo por producto")
	}
	_, ok := batch["p3"]
	assert.False(t, ok, "productos sin stock válido no aparecen en el mapa")
}

func TestExpiredStock_IgnoraActivePeroNoElRestante(t *testing.T) {
	repo := memory.NewEntryRepository()
	seedStockEntry(t, repo, "v1", "p1", days(-5), 60, true)
	seedStockEntry(t, repo, "v2", "p1", days(-1), 40, false) // inactiva pero vencida: cuenta
	seedStockEntry(t, repo, "v3", "p1", days(-1), 0, true)   // sin restante: aporta 0
	seedStockEntry(t, repo, "ok", "p1", days(30), 100, true)

	uc := inventory.NewStockUseCase(repo, 0)
	expired, err := uc.ExpiredStock(context.Background(), "p1")

	require.NoError(t, err)
	assert.True(t, expired.Equal(decimal.NewFromInt(100)))

	list, err := uc.ListExpired(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, list, 2, "solo vencidas con restante > 0")
}

func TestListExpiringSoon_VentanaConfigurada(t *testing.T) {
	repo := memory.NewEntryRepository()
	seedStockEntry(t, repo, "hoy", "p1", days(0), 10, true)
	seedStockEntry(t, repo, "d10", "p1", days(10), 20, true)
	seedStockEntry(t, repo, "d20", "p1", days(20), 30, true)
	seedStockEntry(t, repo, "vencida", "p1", days(-1), 40, true)
	seedStockEntry(t, repo, "sinvenc", "p1", nil, 50, true)

	uc := inventory.NewStockUseCase(repo, 15)
	ctx := context.Background()

	// Ventana default (15 días): hoy y d10.
	list, err := uc.ListExpiringSoon(ctx, "p1", 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Ventana explícita más amplia incluye d20.
	list, err = uc.ListExpiringSoon(ctx, "p1", 25)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	total, err := uc.ExpiringSoonStock(ctx, "p1", 25)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(60)))
}

func TestListExpiringSoon_TodosLosProductos(t *testing.T) {
	repo := memory.NewEntryRepository()
	seedStockEntry(t, repo, "a", "p1", days(5), 10, true)
	seedStockEntry(t, repo, "b", "p2", days(5), 20, true)

	uc := inventory.NewStockUseCase(repo, 15)
	list, err := uc.ListExpiringSoon(context.Background(), "", 0)

	require.NoError(t, err)
	assert.Len(t, list, 2, "productID vacío consulta todo el inventario")
}
