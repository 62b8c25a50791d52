package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	domaininv "github.com/agrostock/agrostock-api/internal/domain/inventory"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

// ReplenishmentUseCase genera el reporte de stock bajo: productos cuyo stock
// válido está por debajo del umbral mínimo del catálogo, con la cantidad
// sugerida de pedido y un ranking de urgencia por déficit relativo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	calc        *StockUseCase
	classifier  domaininv.Classifier
}

// NewReplenishmentUseCase construye el caso de uso. classifier nil usa la
// inferencia por nombre.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	calc *StockUseCase,
	classifier domaininv.Classifier,
) *ReplenishmentUseCase {
	if classifier == nil {
		classifier = domaininv.NameClassifier{}
	}
	return &ReplenishmentUseCase{
		productRepo: productRepo,
		calc:        calc,
		classifier:  classifier,
	}
}

// LowStockItem un producto por debajo de su umbral mínimo.
type LowStockItem struct {
	ProductID    string
	ProductName  string
	BaseUnit     string
	Category     domaininv.Category
	ValidStock   decimal.Decimal
	MinimumLevel decimal.Decimal
	TargetLevel  decimal.Decimal // MaximumLevel, o MinimumLevel * 1.5 si no hay máximo
	SuggestedQty decimal.Decimal // TargetLevel - ValidStock
	HasEntries   bool            // false = nunca abastecido, no solo agotado
	Priority     int             // 1 = más urgente
}

// LowStockReport devuelve los productos con stock válido bajo el mínimo,
// ordenados por déficit relativo descendente. Productos sin umbral mínimo no
// participan del reporte.
func (uc *ReplenishmentUseCase) LowStockReport(ctx context.Context) ([]LowStockItem, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	stocks, err := uc.calc.ValidStockByProduct(ctx)
	if err != nil {
		return nil, err
	}

	oneAndHalf := decimal.NewFromFloat(1.5)
	items := make([]LowStockItem, 0)
	for _, p := range products {
		if !p.HasMinimum() || p.MinimumLevel.LessThanOrEqual(decimal.Zero) {
			continue
		}
		current := stocks[p.ID] // ausente = cero
		if current.GreaterThanOrEqual(*p.MinimumLevel) {
			continue
		}

		target := p.MinimumLevel.Mul(oneAndHalf)
		if p.MaximumLevel != nil && p.MaximumLevel.GreaterThan(decimal.Zero) {
			target = *p.MaximumLevel
		}
		suggested := target.Sub(current)
		if suggested.LessThan(decimal.Zero) {
			suggested = decimal.Zero
		}

		hasEntries, err := uc.calc.HasAnyEntries(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		items = append(items, LowStockItem{
			ProductID:    p.ID,
			ProductName:  p.Name,
			BaseUnit:     p.BaseUnit,
			Category:     uc.classifier.Classify(p.Name),
			ValidStock:   current,
			MinimumLevel: *p.MinimumLevel,
			TargetLevel:  target,
			SuggestedQty: suggested,
			HasEntries:   hasEntries,
		})
	}

	// Mayor déficit relativo primero (qué tan abajo del mínimo, en proporción).
	sort.SliceStable(items, func(i, j int) bool {
		defI := relativeDeficit(items[i])
		defJ := relativeDeficit(items[j])
		if !defI.Equal(defJ) {
			return defI.GreaterThan(defJ)
		}
		return items[i].ProductName < items[j].ProductName
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}

func relativeDeficit(item LowStockItem) decimal.Decimal {
	if item.MinimumLevel.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return item.MinimumLevel.Sub(item.ValidStock).Div(item.MinimumLevel)
}
