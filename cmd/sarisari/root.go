package main

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sarisari-inventory/internal/application/catalog"
	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/jhoicas/sarisari-inventory/internal/application/ledger"
	"github.com/jhoicas/sarisari-inventory/internal/domain"
	infrapdf "github.com/jhoicas/sarisari-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/store"
	"github.com/jhoicas/sarisari-inventory/pkg/config"
	"github.com/jhoicas/sarisari-inventory/pkg/logger"
)

// services casos de uso cableados sobre el almacenamiento configurado.
type services struct {
	store         *store.Store
	catalog       *catalog.UseCase
	engine        *inventory.Engine
	ledger        *ledger.UseCase
	replenishment *inventory.ReplenishmentUseCase
}

// boot carga la configuración y abre el almacenamiento.
func boot(ctx context.Context) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	engine := inventory.NewEngine(st.TxRunner, nil, log).
		WithBusyRetries(cfg.Inventory.BusyRetries, cfg.Inventory.BusyBackoff)

	return &services{
		store:         st,
		catalog:       catalog.NewUseCase(st.Products),
		engine:        engine,
		ledger:        ledger.NewUseCase(st.Sales, infrapdf.NewSalesReportRenderer(cfg.App.Name)),
		replenishment: inventory.NewReplenishmentUseCase(st.Products, st.Sales),
	}, nil
}

// withServices abre los servicios para un comando y los cierra al terminar.
func withServices(fn func(cmd *cobra.Command, args []string, svc *services) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.store.Close()
		return fn(cmd, args, svc)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sarisari",
		Short:         "Inventario y ventas de la tienda",
		Long:          "Catálogo de productos, ventas y reabastecimientos con registro de ventas. Configuración vía variables de entorno (STORE_DRIVER, SQLITE_PATH, DATABASE_URL, ...).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Catálogo
	root.AddCommand(newProductCmd())

	// Inventario
	root.AddCommand(newSellCmd())
	root.AddCommand(newRestockCmd())
	root.AddCommand(newReplenishCmd())

	// Libro de ventas
	root.AddCommand(newSalesCmd())

	// Datos
	root.AddCommand(newImportCmd())
	root.AddCommand(newMigrateCmd())
	return root
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("id inválido %q", s)
	}
	return id, nil
}

func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, domain.Invalid("cantidad inválida %q", s)
	}
	return n, nil
}
