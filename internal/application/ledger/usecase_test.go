package ledger_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sarisari-inventory/internal/application/catalog"
	"github.com/jhoicas/sarisari-inventory/internal/application/dto"
	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/jhoicas/sarisari-inventory/internal/application/ledger"
	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/sqlite"
)

type fakeRenderer struct {
	got *dto.SalesReport
	err error
}

func (r *fakeRenderer) RenderSalesReport(_ context.Context, report *dto.SalesReport) ([]byte, error) {
	r.got = report
	return []byte("%PDF-fake"), r.err
}

type env struct {
	catalog *catalog.UseCase
	engine  *inventory.Engine
	ledger  *ledger.UseCase
	render  *fakeRenderer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	render := &fakeRenderer{}
	return &env{
		catalog: catalog.NewUseCase(sqlite.NewProductRepository(db)),
		engine:  inventory.NewEngine(sqlite.NewTxRunner(db, time.Second), nil, nil),
		ledger:  ledger.NewUseCase(sqlite.NewSaleRepository(db), render),
		render:  render,
	}
}

func TestListAll_MasRecientePrimero(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id, err := e.catalog.Create(ctx, "Arroz", 10, decimal.NewFromInt(50))
	require.NoError(t, err)

	for _, n := range []int64{1, 2, 3} {
		_, err := e.engine.Sell(ctx, id, n)
		require.NoError(t, err)
	}

	sales, err := e.ledger.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, int64(3), sales[0].Quantity)
	assert.Equal(t, int64(1), sales[2].Quantity)
	assert.Greater(t, sales[0].ID, sales[1].ID)
	assert.False(t, sales[0].SoldAt.Before(sales[1].SoldAt))

	again, err := e.ledger.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sales, again, "leer el libro no lo modifica")
}

func TestListAll_NombreActualOInstantanea(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	renamed, err := e.catalog.Create(ctx, "Arroz", 10, decimal.NewFromInt(50))
	require.NoError(t, err)
	deleted, err := e.catalog.Create(ctx, "Pan", 10, decimal.NewFromInt(2))
	require.NoError(t, err)

	_, err = e.engine.Sell(ctx, renamed, 1)
	require.NoError(t, err)
	_, err = e.engine.Sell(ctx, deleted, 1)
	require.NoError(t, err)
	require.NoError(t, e.catalog.Delete(ctx, deleted))

	sales, err := e.ledger.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Pan", sales[0].ProductName)
	assert.Equal(t, "Pan", sales[0].DisplayName, "producto eliminado usa el nombre guardado")
	assert.Equal(t, deleted, sales[0].ProductID)
}

func TestLecturasRepetidasDevuelvenLoMismo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	arroz, err := e.catalog.Create(ctx, "Arroz", 10, decimal.NewFromInt(50))
	require.NoError(t, err)
	_, err = e.catalog.Create(ctx, "Pan", 3, decimal.RequireFromString("2.25"))
	require.NoError(t, err)
	_, err = e.engine.Sell(ctx, arroz, 3)
	require.NoError(t, err)

	readBoth := func() ([]*entity.Product, []entity.SaleView) {
		t.Helper()
		products, err := e.catalog.ListAll(ctx)
		require.NoError(t, err)
		sales, err := e.ledger.ListAll(ctx)
		require.NoError(t, err)
		return products, sales
	}

	products1, sales1 := readBoth()
	products2, sales2 := readBoth()
	assert.Equal(t, products1, products2)
	assert.Equal(t, sales1, sales2)

	_, err = e.engine.Sell(ctx, arroz, 100)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	products3, sales3 := readBoth()
	products4, sales4 := readBoth()
	assert.Equal(t, products3, products4)
	assert.Equal(t, sales3, sales4)
	assert.Equal(t, products1, products3, "una venta rechazada no cambia el catálogo")
	assert.Equal(t, sales1, sales3, "una venta rechazada no registra nada")
}

func TestReport_Totales(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id, err := e.catalog.Create(ctx, "Aceite", 10, decimal.RequireFromString("33.35"))
	require.NoError(t, err)
	_, err = e.engine.Sell(ctx, id, 3)
	require.NoError(t, err)
	_, err = e.engine.Sell(ctx, id, 2)
	require.NoError(t, err)

	report, err := e.ledger.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), report.TotalUnits)
	assert.Equal(t, "166.75", report.GrandTotal.StringFixed(2))
	require.Len(t, report.Sales, 2)
	assert.NotEmpty(t, report.Sales[0].SoldAtLocal)
}

func TestExportPDF(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	data, filename, err := e.ledger.ExportPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), data)
	assert.True(t, strings.HasPrefix(filename, "ventas_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	require.NotNil(t, e.render.got)
	assert.Empty(t, e.render.got.Sales)

	e.render.err = errors.New("fuente no encontrada")
	_, _, err = e.ledger.ExportPDF(ctx)
	assert.Error(t, err)
}

func TestExportPDF_SinRenderer(t *testing.T) {
	_, _, err := ledger.NewUseCase(nil, nil).ExportPDF(context.Background())
	assert.Error(t, err)
}
