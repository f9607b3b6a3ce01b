package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sarisari-inventory/internal/application/dto"
	"github.com/jhoicas/sarisari-inventory/internal/application/ledger"
)

// SalesHandler expone el historial de ventas (solo lectura).
type SalesHandler struct {
	uc *ledger.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *ledger.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// List godoc
// @Summary      Historial de ventas
// @Description  De la venta más reciente a la más antigua.
// @Tags         sales
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	sales, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.ToSaleResponse(s))
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Historial de ventas en PDF
// @Tags         sales
// @Produce      application/pdf
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales/report.pdf [get]
func (h *SalesHandler) ExportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.ExportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
