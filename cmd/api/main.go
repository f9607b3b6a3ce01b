package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/sarisari-inventory/internal/application/catalog"
	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/jhoicas/sarisari-inventory/internal/application/ledger"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/sarisari-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/sarisari-inventory/internal/interfaces/http"
	"github.com/jhoicas/sarisari-inventory/pkg/config"
	"github.com/jhoicas/sarisari-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("conexión al almacenamiento")
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)

	engine := inventory.NewEngine(st.TxRunner, recorder, log).
		WithBusyRetries(cfg.Inventory.BusyRetries, cfg.Inventory.BusyBackoff)
	catalogUC := catalog.NewUseCase(st.Products)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.Products, st.Sales)
	ledgerUC := ledger.NewUseCase(st.Sales, infrapdf.NewSalesReportRenderer(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:       cfg.App.Name,
		Catalog:       catalogUC,
		Engine:        engine,
		Replenishment: replenishmentUC,
		Ledger:        ledgerUC,
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
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
