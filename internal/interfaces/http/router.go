package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/sarisari-inventory/internal/application/catalog"
	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/jhoicas/sarisari-inventory/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName       string
	Catalog       *catalog.UseCase
	Engine        *inventory.Engine
	Replenishment *inventory.ReplenishmentUseCase
	Ledger        *ledger.UseCase
	Metrics       nethttp.Handler // opcional: promhttp
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Catalog)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id/price", productHandler.UpdatePrice)
	products.Delete("/:id", productHandler.Delete)

	// Inventory: ventas y reabastecimientos pasan por el motor
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Engine, deps.Replenishment)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
	invGroup.Post("/:id/sell", inventoryHandler.Sell)
	invGroup.Post("/:id/restock", inventoryHandler.Restock)

	// Sales (solo lectura)
	sales := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.Ledger)
	sales.Get("/", salesHandler.List)
	sales.Get("/report.pdf", salesHandler.ExportPDF)
}
