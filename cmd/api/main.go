package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/application/inventory"
	"github.com/agrostock/agrostock-api/internal/infrastructure/postgres"
	httpRouter "github.com/agrostock/agrostock-api/internal/interfaces/http"
	"github.com/agrostock/agrostock-api/pkg/config"
	"github.com/agrostock/agrostock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	entryRepo := postgres.NewEntryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewConsumptionMovementRepository(pool)
	rechargeRepo := postgres.NewRechargeRequestRepository(pool)
	consolidatedRepo := postgres.NewConsolidatedStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	locker := inventory.NewProductLocker()
	entryUC := inventory.NewEntryUseCase(entryRepo, productRepo, locker)
	consumeUC := inventory.NewConsumeUseCase(txRunner, locker)
	stockUC := inventory.NewStockUseCase(entryRepo, cfg.Stock.ExpiringSoonDays)
	reconcileUC := inventory.NewReconcileUseCase(
		inventory.NewEntryDerivedStockView(stockUC),
		inventory.NewConsolidatedStockView(consolidatedRepo),
		decimal.NewFromFloat(cfg.Stock.MismatchTolerance),
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(productRepo, stockUC, nil)
	rechargeUC := inventory.NewRechargeUseCase(rechargeRepo, productRepo, stockUC)
	movementUC := inventory.NewMovementUseCase(movementRepo)

	// Resolución periódica de recargas: el timer vive aquí, en el host,
	// y se apaga con el resto de la aplicación.
	scheduler := inventory.NewResolverScheduler(
		rechargeUC,
		time.Duration(cfg.Stock.RechargeResolveSeconds)*time.Second,
		log,
	)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgroStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EntryUC:         entryUC,
		ConsumeUC:       consumeUC,
		StockUC:         stockUC,
		ReconcileUC:     reconcileUC,
		ReplenishmentUC: replenishmentUC,
		RechargeUC:      rechargeUC,
		MovementUC:      movementUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
