package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// DefaultExpiringSoonDays ventana por defecto para "por vencer".
const DefaultExpiringSoonDays = 15

// StockUseCase es la calculadora de validez de stock: agregación pura y sin
// estado sobre la foto actual de las entradas. Nunca muta nada. Toda la
// aritmética se acumula sin redondear; el redondeo a 2 decimales ocurre solo
// en el borde de presentación (DTOs).
type StockUseCase struct {
	entryRepo        repository.EntryRepository
	expiringSoonDays int
	now              func() time.Time
}

// NewStockUseCase construye la calculadora. expiringSoonDays <= 0 usa el default.
func NewStockUseCase(entryRepo repository.EntryRepository, expiringSoonDays int) *StockUseCase {
	if expiringSoonDays <= 0 {
		expiringSoonDays = DefaultExpiringSoonDays
	}
	return &StockUseCase{
		entryRepo:        entryRepo,
		expiringSoonDays: expiringSoonDays,
		now:              time.Now,
	}
}

// ValidStock suma BaseQuantityRemaining de las entradas válidas del producto
// (activas, no vencidas, con restante > 0). Un producto sin entradas devuelve
// 0, no "desconocido": los callers que necesiten distinguir "nunca abastecido"
// de "agotado" deben usar HasAnyEntries.
func (uc *StockUseCase) ValidStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	entries, err := uc.entryRepo.ListByProduct(productID)
	if err != nil {
		return decimal.Zero, err
	}
	today := uc.now()
	total := decimal.Zero
	for _, e := range entries {
		if e.IsValid(today) {
			total = total.Add(e.BaseQuantityRemaining)
		}
	}
	return total, nil
}

// ValidStockByProduct calcula el stock válido de todos los productos en una
// sola pasada. Numéricamente idéntico a llamar ValidStock por producto;
// existe solo como variante batch para los tableros.
func (uc *StockUseCase) ValidStockByProduct(ctx context.Context) (map[string]decimal.Decimal, error) {
	entries, err := uc.entryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	today := uc.now()
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if !e.IsValid(today) {
			continue
		}
		totals[e.ProductID] = totals[e.ProductID].Add(e.BaseQuantityRemaining)
	}
	return totals, nil
}

// ExpiredStock suma el restante de las entradas vencidas del producto.
// Ignora Active (verdad histórica para reportes) pero una entrada ya
// consumida del todo aporta 0.
func (uc *StockUseCase) ExpiredStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	entries, err := uc.listExpired(productID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.BaseQuantityRemaining)
	}
	return total, nil
}

// ExpiringSoonStock suma el restante de las entradas que vencen dentro de
// withinDays días (hoy inclusive). withinDays <= 0 usa la ventana configurada.
func (uc *StockUseCase) ExpiringSoonStock(ctx context.Context, productID string, withinDays int) (decimal.Decimal, error) {
	entries, err := uc.ListExpiringSoon(ctx, productID, withinDays)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.BaseQuantityRemaining)
	}
	return total, nil
}

// ListExpired devuelve las entradas vencidas con restante > 0.
// productID vacío = todos los productos.
func (uc *StockUseCase) ListExpired(ctx context.Context, productID string) ([]*entity.InventoryEntry, error) {
	return uc.listExpired(productID)
}

// ListExpiringSoon devuelve las entradas por vencer con restante > 0,
// para los paneles de alertas. productID vacío = todos los productos.
func (uc *StockUseCase) ListExpiringSoon(ctx context.Context, productID string, withinDays int) ([]*entity.InventoryEntry, error) {
	if withinDays <= 0 {
		withinDays = uc.expiringSoonDays
	}
	entries, err := uc.listScope(productID)
	if err != nil {
		return nil, err
	}
	today := uc.now()
	out := make([]*entity.InventoryEntry, 0)
	for _, e := range entries {
		if e.IsExpiringSoon(today, withinDays) && e.BaseQuantityRemaining.GreaterThan(decimal.Zero) {
			out = append(out, e)
		}
	}
	return out, nil
}

// HasAnyEntries distingue "producto nunca abastecido" (false) de "producto
// agotado" (true con ValidStock 0). El cero de ValidStock no alcanza solo.
func (uc *StockUseCase) HasAnyEntries(ctx context.Context, productID string) (bool, error) {
	return uc.entryRepo.HasAnyByProduct(productID)
}

func (uc *StockUseCase) listExpired(productID string) ([]*entity.InventoryEntry, error) {
	entries, err := uc.listScope(productID)
	if err != nil {
		return nil, err
	}
	today := uc.now()
	out := make([]*entity.InventoryEntry, 0)
	for _, e := range entries {
		if e.IsExpired(today) && e.BaseQuantityRemaining.GreaterThan(decimal.Zero) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (uc *StockUseCase) listScope(productID string) ([]*entity.InventoryEntry, error) {
	if productID == "" {
		return uc.entryRepo.ListAll()
	}
	return uc.entryRepo.ListByProduct(productID)
}
