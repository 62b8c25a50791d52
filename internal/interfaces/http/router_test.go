package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostock/agrostock-api/internal/application/inventory"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/infrastructure/memory"
	httpRouter "github.com/agrostock/agrostock-api/internal/interfaces/http"
)

type apiFixture struct {
	app          *fiber.App
	entryRepo    *memory.EntryRepo
	consolidated *memory.ConsolidatedStock
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()

	entryRepo := memory.NewEntryRepository()
	movRepo := memory.NewConsumptionMovementRepository()
	rechargeRepo := memory.NewRechargeRequestRepository()
	consolidated := memory.NewConsolidatedStock()

	catalog := memory.NewProductRepository()
	min := decimal.NewFromInt(100)
	catalog.Put(&entity.Product{
		ID:           "prod-concentrado",
		Name:         "Concentrado Lechón",
		BaseUnit:     "kg",
		MinimumLevel: &min,
	})

	locker := inventory.NewProductLocker()
	stockUC := inventory.NewStockUseCase(entryRepo, 15)

	app := fiber.New()
	httpRouter.Router(app, httpRouter.RouterDeps{
		EntryUC:   inventory.NewEntryUseCase(entryRepo, catalog, locker),
		ConsumeUC: inventory.NewConsumeUseCase(memory.NewTxRunner(entryRepo, movRepo), locker),
		StockUC:   stockUC,
		ReconcileUC: inventory.NewReconcileUseCase(
			inventory.NewEntryDerivedStockView(stockUC),
			inventory.NewConsolidatedStockView(consolidated),
			decimal.NewFromFloat(0.01),
		),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(catalog, stockUC, nil),
		RechargeUC:      inventory.NewRechargeUseCase(rechargeRepo, catalog, stockUC),
		MovementUC:      inventory.NewMovementUseCase(movRepo),
	})
	return apiFixture{app: app, entryRepo: entryRepo, consolidated: consolidated}
}

func (f apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (f apiFixture) createEntry(t *testing.T, expirationInDays int) map[string]any {
	t.Helper()
	body := map[string]any{
		"product_id":               "prod-concentrado",
		"control_unit":             "bulto",
		"content_per_control_unit": "25",
		"control_units_received":   "4",
	}
	if expirationInDays != 0 {
		body["expiration_date"] = time.Now().AddDate(0, 0, expirationInDays).Format(time.RFC3339)
	}
	resp := f.do(t, fiber.MethodPost, "/api/entries/", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var entry map[string]any
	decode(t, resp, &entry)
	return entry
}

// ── entradas ──────────────────────────────────────────────────────────────────

func TestAPI_CrearYLeerEntrada(t *testing.T) {
	f := newAPI(t)

	entry := f.createEntry(t, 30)
	assert.Equal(t, "100", entry["base_quantity_received"])
	assert.Equal(t, "100", entry["base_quantity_remaining"])

	resp := f.do(t, fiber.MethodGet, fmt.Sprintf("/api/entries/%s", entry["id"]), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list map[string]any
	resp = f.do(t, fiber.MethodGet, "/api/entries/?product_id=prod-concentrado", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	assert.Equal(t, float64(1), list["total"])
}

func TestAPI_CrearEntradaInvalida(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, fiber.MethodPost, "/api/entries/", map[string]any{
		"product_id":               "prod-concentrado",
		"content_per_control_unit": "0",
		"control_units_received":   "4",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, fiber.MethodPost, "/api/entries/", map[string]any{
		"product_id":               "producto-fantasma",
		"content_per_control_unit": "25",
		"control_units_received":   "4",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAPI_BorradoLogico(t *testing.T) {
	f := newAPI(t)
	entry := f.createEntry(t, 30)

	resp := f.do(t, fiber.MethodDelete, fmt.Sprintf("/api/entries/%s", entry["id"]),
		map[string]any{"observation": "bulto roto"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var deleted map[string]any
	decode(t, resp, &deleted)
	assert.Equal(t, false, deleted["active"])
	assert.Equal(t, "bulto roto", deleted["notes"])

	resp = f.do(t, fiber.MethodDelete, "/api/entries/fantasma", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ── consumo y stock ───────────────────────────────────────────────────────────

func TestAPI_ConsumoYStockValido(t *testing.T) {
	f := newAPI(t)
	f.createEntry(t, 30) // 100 kg

	resp := f.do(t, fiber.MethodPost, "/api/inventory/consume", map[string]any{
		"product_id": "prod-concentrado",
		"quantity":   "30",
		"context":    "plan de alimentación",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]any
	decode(t, resp, &result)
	assert.Equal(t, "30", result["consumed"])
	assert.Equal(t, "0", result["shortfall"])

	resp = f.do(t, fiber.MethodGet, "/api/stock/valid/prod-concentrado", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stock map[string]any
	decode(t, resp, &stock)
	assert.Equal(t, "70", stock["quantity"])
	assert.Equal(t, true, stock["has_entries"])
}

func TestAPI_HistorialDeMovimientos(t *testing.T) {
	f := newAPI(t)
	f.createEntry(t, 30)

	resp := f.do(t, fiber.MethodPost, "/api/inventory/consume", map[string]any{
		"product_id": "prod-concentrado",
		"quantity":   "30",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = f.do(t, fiber.MethodGet, "/api/inventory/movements?product_id=prod-concentrado", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var history map[string]any
	decode(t, resp, &history)
	assert.Equal(t, float64(1), history["total"])

	resp = f.do(t, fiber.MethodGet, "/api/inventory/movements", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "product_id es obligatorio")
}

func TestAPI_ConsumoInvalido(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, fiber.MethodPost, "/api/inventory/consume", map[string]any{
		"product_id": "prod-concentrado",
		"quantity":   "0",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAPI_StockVencidoYPorVencer(t *testing.T) {
	f := newAPI(t)
	f.createEntry(t, -2) // vencida
	f.createEntry(t, 5)  // por vencer
	f.createEntry(t, 60) // lejana

	resp := f.do(t, fiber.MethodGet, "/api/stock/expired/prod-concentrado", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var expired map[string]any
	decode(t, resp, &expired)
	assert.Equal(t, "100", expired["quantity"])

	resp = f.do(t, fiber.MethodGet, "/api/stock/expiring-soon?product_id=prod-concentrado", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var soon map[string]any
	decode(t, resp, &soon)
	assert.Equal(t, float64(1), soon["total"], "solo la que vence dentro de la ventana")

	resp = f.do(t, fiber.MethodGet, "/api/stock/valid/prod-concentrado", nil)
	var valid map[string]any
	decode(t, resp, &valid)
	assert.Equal(t, "200", valid["quantity"], "la vencida no aporta stock válido")
}

func TestAPI_Mismatch(t *testing.T) {
	f := newAPI(t)
	f.createEntry(t, 30) // 100 kg válidos
	f.consolidated.Set("prod-concentrado", decimal.NewFromInt(85))

	resp := f.do(t, fiber.MethodGet, "/api/stock/mismatch/prod-concentrado", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report map[string]any
	decode(t, resp, &report)
	assert.Equal(t, true, report["mismatch"])
	assert.Equal(t, "15", report["difference"])
}

func TestAPI_StockBajo(t *testing.T) {
	f := newAPI(t)
	// 100 kg recibidos contra mínimo de 100: todavía no está bajo.
	f.createEntry(t, 30)

	resp := f.do(t, fiber.MethodPost, "/api/inventory/consume", map[string]any{
		"product_id": "prod-concentrado",
		"quantity":   "60",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = f.do(t, fiber.MethodGet, "/api/stock/low", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var report map[string]any
	decode(t, resp, &report)
	assert.Equal(t, float64(1), report["total"])
}

// ── recargas ──────────────────────────────────────────────────────────────────

func TestAPI_CicloDeRecarga(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, fiber.MethodPost, "/api/recharges/", map[string]any{
		"product_name_hint":    "concentrado lechon",
		"required_quantity":    "40",
		"available_at_request": "5",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = f.do(t, fiber.MethodGet, "/api/recharges/pending", nil)
	var pending map[string]any
	decode(t, resp, &pending)
	assert.Equal(t, float64(1), pending["total"])

	// Sin stock el ciclo no resuelve.
	resp = f.do(t, fiber.MethodPost, "/api/recharges/resolve", nil)
	var cycle map[string]any
	decode(t, resp, &cycle)
	assert.Equal(t, float64(0), cycle["resolved"])

	// Llega mercancía y el siguiente ciclo la resuelve por nombre.
	f.createEntry(t, 30)
	resp = f.do(t, fiber.MethodPost, "/api/recharges/resolve", nil)
	decode(t, resp, &cycle)
	assert.Equal(t, float64(1), cycle["resolved"])

	resp = f.do(t, fiber.MethodGet, "/api/recharges/resolved", nil)
	var resolved map[string]any
	decode(t, resp, &resolved)
	assert.Equal(t, float64(1), resolved["total"])
}

func TestAPI_RecargaInvalida(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, fiber.MethodPost, "/api/recharges/", map[string]any{
		"required_quantity": "40",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
