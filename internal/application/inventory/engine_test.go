package inventory_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	db       *sqlx.DB
	products *sqlite.ProductRepo
	sales    *sqlite.SaleRepo
	runner   *sqlite.TxRunner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "engine.db"), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &fixture{
		db:       db,
		products: sqlite.NewProductRepository(db),
		sales:    sqlite.NewSaleRepository(db),
		runner:   sqlite.NewTxRunner(db, 5*time.Second),
	}
}

func (f *fixture) addProduct(t *testing.T, name string, qty int64, price string) int64 {
	t.Helper()
	now := time.Now()
	id, err := f.products.Create(context.Background(), &entity.Product{
		Name: name, Quantity: qty, Price: decimal.RequireFromString(price),
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) quantity(t *testing.T, id int64) int64 {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

type recorded struct {
	op, outcome string
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recorded
}

func (r *fakeRecorder) ObserveOperation(op, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recorded{op, outcome})
}

// failingLedgerRunner delega en el runner real pero entrega un libro que siempre falla.
type failingLedgerRunner struct {
	inner inventory.TxRunner
}

type failingSaleRepo struct{ repository.SaleRepository }

func (failingSaleRepo) Append(context.Context, *entity.Sale) (int64, error) {
	return 0, errors.Join(domain.ErrStorage, errors.New("disco lleno"))
}

func (r failingLedgerRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	return r.inner.Run(ctx, func(p repository.ProductRepository, s repository.SaleRepository) error {
		return fn(p, failingSaleRepo{s})
	})
}

// busyRunner responde ErrBusy las primeras n veces.
type busyRunner struct {
	inner inventory.TxRunner
	fails int32
	calls atomic.Int32
}

func (r *busyRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	if r.calls.Add(1) <= r.fails {
		return domain.ErrBusy
	}
	return r.inner.Run(ctx, fn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sell / Restock
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_EscenarioArroz(t *testing.T) {
	f := newFixture(t)
	rec := &fakeRecorder{}
	engine := inventory.NewEngine(f.runner, rec, nil)
	id := f.addProduct(t, "Arroz", 10, "50.00")
	ctx := context.Background()

	res, err := engine.Sell(ctx, id, 3)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("150.00").Equal(res.Total))
	assert.Equal(t, int64(7), res.Remaining)
	assert.Equal(t, int64(7), f.quantity(t, id))

	_, err = engine.Sell(ctx, id, 8)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(7), stockErr.Available)
	assert.Equal(t, int64(8), stockErr.Requested)
	assert.Equal(t, int64(7), f.quantity(t, id), "venta rechazada no modifica stock")

	qty, err := engine.Restock(ctx, id, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(12), qty)

	sales, err := f.sales.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1, "la venta rechazada no deja rastro en el libro")
	assert.Equal(t, "Arroz", sales[0].ProductName)
	assert.Equal(t, int64(3), sales[0].Quantity)

	assert.Equal(t, []recorded{
		{inventory.OpSell, inventory.OutcomeOK},
		{inventory.OpSell, inventory.OutcomeInsufficientStock},
		{inventory.OpRestock, inventory.OutcomeOK},
	}, rec.events)
}

func TestEngine_VenderTodoElStock(t *testing.T) {
	f := newFixture(t)
	engine := inventory.NewEngine(f.runner, nil, nil)
	id := f.addProduct(t, "Sardinas", 4, "20.00")

	res, err := engine.Sell(context.Background(), id, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Remaining)

	_, err = engine.Sell(context.Background(), id, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestEngine_Validaciones(t *testing.T) {
	f := newFixture(t)
	engine := inventory.NewEngine(f.runner, nil, nil)
	id := f.addProduct(t, "Arroz", 10, "50.00")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"venta cantidad cero", func() error { _, err := engine.Sell(ctx, id, 0); return err }, domain.ErrInvalidInput},
		{"venta cantidad negativa", func() error { _, err := engine.Sell(ctx, id, -1); return err }, domain.ErrInvalidInput},
		{"venta id inválido", func() error { _, err := engine.Sell(ctx, 0, 1); return err }, domain.ErrInvalidInput},
		{"venta producto inexistente", func() error { _, err := engine.Sell(ctx, 999, 1); return err }, domain.ErrNotFound},
		{"reabastecer cero", func() error { _, err := engine.Restock(ctx, id, 0); return err }, domain.ErrInvalidInput},
		{"reabastecer producto inexistente", func() error { _, err := engine.Restock(ctx, 999, 1); return err }, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
	assert.Equal(t, int64(10), f.quantity(t, id))
}

func TestEngine_TotalUsaPrecioAlMomentoDeVender(t *testing.T) {
	f := newFixture(t)
	engine := inventory.NewEngine(f.runner, nil, nil)
	id := f.addProduct(t, "Aceite", 10, "33.35")
	ctx := context.Background()

	res, err := engine.Sell(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, "100.05", res.Total.StringFixed(2))

	require.NoError(t, f.products.UpdatePrice(ctx, id, decimal.RequireFromString("40.00")))
	_, err = engine.Sell(ctx, id, 1)
	require.NoError(t, err)

	sales, err := f.sales.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "40.00", sales[0].Total.StringFixed(2))
	assert.Equal(t, "100.05", sales[1].Total.StringFixed(2), "el total registrado no cambia con el precio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_FallaDelLibroRevierteStock(t *testing.T) {
	f := newFixture(t)
	rec := &fakeRecorder{}
	engine := inventory.NewEngine(failingLedgerRunner{inner: f.runner}, rec, nil)
	id := f.addProduct(t, "Arroz", 10, "50.00")

	_, err := engine.Sell(context.Background(), id, 3)
	require.ErrorIs(t, err, domain.ErrStorage)

	assert.Equal(t, int64(10), f.quantity(t, id), "el descuento de stock debe revertirse")
	sales, err := f.sales.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.Equal(t, inventory.OutcomeStorageError, rec.events[0].outcome)
}

func TestEngine_SinSobreventaConcurrente(t *testing.T) {
	f := newFixture(t)
	engine := inventory.NewEngine(f.runner, nil, nil)
	const stock, workers = 10, 25
	id := f.addProduct(t, "Arroz", stock, "50.00")

	var ok, rejected atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Sell(context.Background(), id, 1)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(stock), ok.Load())
	assert.Equal(t, int64(workers-stock), rejected.Load())
	assert.Equal(t, int64(0), f.quantity(t, id))

	sales, err := f.sales.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, sales, stock)
}

func TestEngine_VentasYReabastecimientosConcurrentes(t *testing.T) {
	f := newFixture(t)
	engine := inventory.NewEngine(f.runner, nil, nil)
	id := f.addProduct(t, "Pan", 5, "2.50")

	var sold atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := engine.Restock(context.Background(), id, 1)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			if _, err := engine.Sell(context.Background(), id, 2); err == nil {
				sold.Add(2)
			}
		}()
	}
	wg.Wait()

	// stock inicial + reabastecido - vendido
	assert.Equal(t, 5+20-sold.Load(), f.quantity(t, id))
	assert.GreaterOrEqual(t, f.quantity(t, id), int64(0))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos ante ErrBusy
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_ReintentaSoloErrBusy(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Arroz", 10, "50.00")

	runner := &busyRunner{inner: f.runner, fails: 2}
	engine := inventory.NewEngine(runner, nil, nil).WithBusyRetries(2, time.Millisecond)

	_, err := engine.Sell(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(3), runner.calls.Load())

	// stock insuficiente no se reintenta
	runner.calls.Store(0)
	runner.fails = 0
	_, err = engine.Sell(context.Background(), id, 100)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestEngine_SinReintentosDevuelveBusy(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Arroz", 10, "50.00")
	rec := &fakeRecorder{}

	runner := &busyRunner{inner: f.runner, fails: 1}
	engine := inventory.NewEngine(runner, rec, nil)

	_, err := engine.Restock(context.Background(), id, 1)
	require.ErrorIs(t, err, domain.ErrBusy)
	assert.Equal(t, inventory.OutcomeBusy, rec.events[0].outcome)
	assert.Equal(t, int64(10), f.quantity(t, id))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, inventory.OutcomeOK, inventory.Outcome(nil))
	assert.Equal(t, inventory.OutcomeBusy, inventory.Outcome(context.DeadlineExceeded))
	assert.Equal(t, inventory.OutcomeInsufficientStock, inventory.Outcome(&domain.InsufficientStockError{}))
	assert.Equal(t, inventory.OutcomeStorageError, inventory.Outcome(errors.New("x")))
	assert.True(t, inventory.IsBusinessOutcome(&domain.InsufficientStockError{}))
	assert.False(t, inventory.IsBusinessOutcome(domain.ErrBusy))
}
