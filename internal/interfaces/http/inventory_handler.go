package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sarisari-inventory/internal/application/dto"
	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
)

// InventoryHandler maneja ventas, reabastecimientos y la lista de reposición.
type InventoryHandler struct {
	engine        *inventory.Engine
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.Engine, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{engine: engine, replenishment: replenishment}
}

// Sell godoc
// @Summary      Registrar venta
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.StockChangeRequest  true  "Unidades vendidas"
// @Success      201   {object}  dto.SellResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/sell [post]
func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.engine.Sell(c.UserContext(), id, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SellResponse{
		SaleID:    res.SaleID,
		Total:     res.Total,
		Remaining: res.Remaining,
	})
}

// Restock godoc
// @Summary      Reabastecer producto
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.StockChangeRequest  true  "Unidades a sumar"
// @Success      200   {object}  dto.RestockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	qty, err := h.engine.Restock(c.UserContext(), id, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RestockResponse{ProductID: id, Quantity: qty})
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos con stock en o bajo el umbral, ordenados por unidades vendidas en la ventana.
// @Tags         inventory
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de stock"         default(5)
// @Param        days       query  int  false  "Ventana de ventas (días)" default(7)
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 5)
	days := c.QueryInt("days", 7)

	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), int64(threshold), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
