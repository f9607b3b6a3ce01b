package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/application/dto"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportRenderer genera la representación imprimible (PDF) del historial de ventas.
type ReportRenderer interface {
	RenderSalesReport(ctx context.Context, report *dto.SalesReport) ([]byte, error)
}

// UseCase lado de lectura del libro de ventas. Las inserciones solo ocurren
// dentro del motor de inventario.
type UseCase struct {
	repo     repository.SaleRepository
	renderer ReportRenderer
	now      func() time.Time
}

// NewUseCase construye el caso de uso. renderer puede ser nil si no se exporta PDF.
func NewUseCase(repo repository.SaleRepository, renderer ReportRenderer) *UseCase {
	return &UseCase{repo: repo, renderer: renderer, now: time.Now}
}

// ListAll devuelve el historial de la venta más reciente a la más antigua.
func (uc *UseCase) ListAll(ctx context.Context) ([]entity.SaleView, error) {
	return uc.repo.ListAll(ctx)
}

// Report arma el historial con unidades y monto acumulado.
func (uc *UseCase) Report(ctx context.Context) (*dto.SalesReport, error) {
	sales, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	report := &dto.SalesReport{
		GeneratedAt: uc.now(),
		Sales:       make([]dto.SaleResponse, 0, len(sales)),
		GrandTotal:  decimal.Zero,
	}
	for _, s := range sales {
		report.Sales = append(report.Sales, dto.ToSaleResponse(s))
		report.TotalUnits += s.Quantity
		report.GrandTotal = report.GrandTotal.Add(s.Total)
	}
	return report, nil
}

// ExportPDF genera el PDF del historial y un nombre de archivo sugerido.
func (uc *UseCase) ExportPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("ledger: exportación PDF no configurada")
	}
	report, err := uc.Report(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.renderer.RenderSalesReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("ledger: generación PDF fallida: %w", err)
	}
	filename = fmt.Sprintf("ventas_%s.pdf", report.GeneratedAt.Format("20060102_1504"))
	return pdfBytes, filename, nil
}
