package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/sarisari-inventory/pkg/config"
)

// newPool conecta a TEST_DATABASE_URL; sin la variable el test se omite.
func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE products, sales RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestPostgres_SinSobreventaConcurrente(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	products := postgres.NewProductRepository(pool)
	sales := postgres.NewSaleRepository(pool)

	id, err := products.Create(ctx, &entity.Product{
		Name: "Arroz", Quantity: 10, Price: decimal.RequireFromString("50.00"),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	engine := inventory.NewEngine(postgres.NewTxRunner(pool, 2*time.Second), nil, nil).
		WithBusyRetries(3, 10*time.Millisecond)

	var ok atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Sell(ctx, id, 1)
			if err == nil {
				ok.Add(1)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), ok.Load())
	p, err := products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity)

	list, err := sales.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 10)
	assert.Equal(t, "50.00", list[0].Total.StringFixed(2))
}

func TestPostgres_LockTimeoutDevuelveBusy(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	products := postgres.NewProductRepository(pool)
	id, err := products.Create(ctx, &entity.Product{
		Name: "Pan", Quantity: 5, Price: decimal.NewFromInt(2),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	holder := postgres.NewTxRunner(pool, time.Second)
	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- holder.Run(ctx, func(p repository.ProductRepository, _ repository.SaleRepository) error {
			if _, err := p.GetForUpdate(ctx, id); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	engine := inventory.NewEngine(postgres.NewTxRunner(pool, 100*time.Millisecond), nil, nil)
	_, err = engine.Restock(ctx, id, 1)
	assert.True(t, errors.Is(err, domain.ErrBusy), "esperaba ErrBusy, obtuvo %v", err)

	close(release)
	require.NoError(t, <-done)
	p, err := products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Quantity)
}
