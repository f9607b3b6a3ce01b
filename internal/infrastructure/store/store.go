// Package store elige y abre el almacenamiento transaccional configurado
// (PostgreSQL o SQLite) y entrega los repositorios y el TxRunner listos para
// cablear en los casos de uso.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/sqlite"
	"github.com/jhoicas/sarisari-inventory/pkg/config"
)

// Store repositorios fuera de transacción más el runner transaccional.
type Store struct {
	Driver   string
	Products repository.ProductRepository
	Sales    repository.SaleRepository
	TxRunner inventory.TxRunner
	closeFn  func()
}

// Close libera las conexiones.
func (s *Store) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// Open conecta con el driver de cfg.Store y aplica el esquema.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver:   config.DriverPostgres,
			Products: postgres.NewProductRepository(pool),
			Sales:    postgres.NewSaleRepository(pool),
			TxRunner: postgres.NewTxRunner(pool, cfg.Inventory.LockTimeout),
			closeFn:  pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path, cfg.Inventory.LockTimeout)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:   config.DriverSQLite,
			Products: sqlite.NewProductRepository(db),
			Sales:    sqlite.NewSaleRepository(db),
			TxRunner: sqlite.NewTxRunner(db, cfg.Inventory.LockTimeout),
			closeFn:  func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("store: driver no soportado %q", cfg.Store.Driver)
	}
}
