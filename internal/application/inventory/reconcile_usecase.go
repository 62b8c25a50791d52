package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain"
)

// DefaultMismatchTolerance tolerancia por defecto al comparar los dos contadores.
var DefaultMismatchTolerance = decimal.NewFromFloat(0.01)

// ReconcileUseCase compara el stock válido derivado de entradas contra el
// contador consolidado del mismo producto y señala la deriva. Es diagnóstico,
// no motor de corrección: los dos contadores los escriben caminos
// independientes y forzar la igualdad escondería un bug real.
type ReconcileUseCase struct {
	entryView        StockView
	consolidatedView StockView
	tolerance        decimal.Decimal
}

// NewReconcileUseCase construye el detector. tolerance <= 0 usa el default.
func NewReconcileUseCase(entryView, consolidatedView StockView, tolerance decimal.Decimal) *ReconcileUseCase {
	if tolerance.LessThanOrEqual(decimal.Zero) {
		tolerance = DefaultMismatchTolerance
	}
	return &ReconcileUseCase{
		entryView:        entryView,
		consolidatedView: consolidatedView,
		tolerance:        tolerance,
	}
}

// MismatchReport detalle de una comparación entre los dos contadores.
type MismatchReport struct {
	ProductID    string
	ValidStock   decimal.Decimal
	Consolidated decimal.Decimal
	Difference   decimal.Decimal // ValidStock - Consolidated
	Mismatch     bool
}

// DetectMismatch devuelve true si |validStock - consolidado| supera la
// tolerancia. Solo lectura; no corrige ningún lado.
func (uc *ReconcileUseCase) DetectMismatch(ctx context.Context, productID string) (*MismatchReport, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	valid, err := uc.entryView.Stock(ctx, productID)
	if err != nil {
		return nil, err
	}
	consolidated, err := uc.consolidatedView.Stock(ctx, productID)
	if err != nil {
		return nil, err
	}
	diff := valid.Sub(consolidated)
	return &MismatchReport{
		ProductID:    productID,
		ValidStock:   valid,
		Consolidated: consolidated,
		Difference:   diff,
		Mismatch:     diff.Abs().GreaterThan(uc.tolerance),
	}, nil
}
