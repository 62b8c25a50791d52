package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostock/agrostock-api/internal/application/inventory"
	"github.com/agrostock/agrostock-api/pkg/logger"
)

func TestResolverScheduler_CicloInmediatoYParadaLimpia(t *testing.T) {
	f := newRechargeFixture(t)
	ctx := context.Background()

	_, err := f.uc.Record(ctx, inventory.RechargeInputDTO{
		ProductID:        "prod-concentrado",
		RequiredQuantity: decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	seedStockEntry(t, f.entryRepo, "nueva", "prod-concentrado", days(60), 100, true)

	scheduler := inventory.NewResolverScheduler(f.uc, time.Hour, logger.Nop())
	scheduler.Start(ctx)

	// El primer ciclo corre de inmediato, sin esperar el primer tick.
	assert.Eventually(t, func() bool {
		resolved, err := f.uc.Resolved(ctx)
		return err == nil && len(resolved) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Stop espera a que la goroutine termine; no queda trabajo colgado.
	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop no retornó: la goroutine del scheduler quedó colgada")
	}
}

func TestResolverScheduler_SeDetieneConElContexto(t *testing.T) {
	f := newRechargeFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	scheduler := inventory.NewResolverScheduler(f.uc, 10*time.Millisecond, logger.Nop())
	scheduler.Start(ctx)

	cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("el scheduler no respetó la cancelación del contexto")
	}
}
