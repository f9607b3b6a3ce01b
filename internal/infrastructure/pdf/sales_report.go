// Package pdf genera el reporte imprimible del historial de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fecha | Producto | Cant | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ventas / Unidades / TOTAL VENDIDO                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/sarisari-inventory/internal/application/dto"
	"github.com/jhoicas/sarisari-inventory/internal/application/ledger"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ ledger.ReportRenderer = (*SalesReportRenderer)(nil)

// ── Renderer ──────────────────────────────────────────────────────────────────

// SalesReportRenderer implementa ledger.ReportRenderer usando Maroto v2.
type SalesReportRenderer struct {
	storeName string
}

// NewSalesReportRenderer construye el renderer; storeName va en el encabezado.
func NewSalesReportRenderer(storeName string) *SalesReportRenderer {
	return &SalesReportRenderer{storeName: nonEmpty(storeName, "Tienda")}
}

// RenderSalesReport genera el PDF y devuelve sus bytes.
func (r *SalesReportRenderer) RenderSalesReport(_ context.Context, report *dto.SalesReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de ventas", true).
		WithAuthor(r.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Sales) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas registradas", props.Text{
				Size: 8, Top: 2, Align: align.Center, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(report.Sales)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (r *SalesReportRenderer) headerRow(report *dto.SalesReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(r.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Historial de ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+entity.FormatSaleTime(report.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5}
	right := h
	right.Align = align.Right
	center := h
	center.Align = align.Center

	cell := &props.Cell{BackgroundColor: colorPrimary}
	return row.New(7).Add(
		col.New(1).Add(text.New("#", center)).WithStyle(cell),
		col.New(3).Add(text.New("Fecha", h)).WithStyle(cell),
		col.New(4).Add(text.New("Producto", h)).WithStyle(cell),
		col.New(1).Add(text.New("Cant.", right)).WithStyle(cell),
		col.New(3).Add(text.New("Total", right)).WithStyle(cell),
	)
}

func tableDetailRows(sales []dto.SaleResponse) []core.Row {
	rows := make([]core.Row, 0, len(sales))
	for i, s := range sales {
		base := props.Text{Size: 8, Top: 1.5}
		right := base
		right.Align = align.Right
		center := base
		center.Align = align.Center

		r := row.New(6).Add(
			col.New(1).Add(text.New(strconv.FormatInt(s.ID, 10), center)),
			col.New(3).Add(text.New(s.SoldAtLocal, base)),
			col.New(4).Add(text.New(s.DisplayName, base)),
			col.New(1).Add(text.New(strconv.FormatInt(s.Quantity, 10), right)),
			col.New(3).Add(text.New(s.Total.StringFixed(entity.MoneyScale), right)),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func totalsRow(report *dto.SalesReport) core.Row {
	label := props.Text{Size: 9, Align: align.Right, Top: 1}
	value := props.Text{Size: 9, Align: align.Right, Top: 1, Style: fontstyle.Bold}
	total := props.Text{Size: 11, Align: align.Right, Top: 12, Style: fontstyle.Bold, Color: colorPrimary}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Ventas:", label),
			text.New("Unidades:", props.Text{Size: 9, Align: align.Right, Top: 6}),
			text.New("TOTAL VENDIDO:", props.Text{Size: 11, Align: align.Right, Top: 12, Style: fontstyle.Bold}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(len(report.Sales)), value),
			text.New(strconv.FormatInt(report.TotalUnits, 10), props.Text{Size: 9, Align: align.Right, Top: 6, Style: fontstyle.Bold}),
			text.New(report.GrandTotal.StringFixed(entity.MoneyScale), total),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
