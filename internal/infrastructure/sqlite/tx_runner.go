package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/application/inventory"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite (BEGIN IMMEDIATE).
type TxRunner struct {
	db          *sqlx.DB
	lockTimeout time.Duration
}

// NewTxRunner construye el runner. lockTimeout acota la operación completa,
// incluida la espera por la conexión de escritura; 0 = sin límite propio.
func NewTxRunner(db *sqlx.DB, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{db: db, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if r.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.lockTimeout)
		defer cancel()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewProductRepository(tx), NewSaleRepository(tx)); err != nil {
		if expired(ctx, err) {
			return mapError("transaction", ctx.Err())
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		if expired(ctx, err) {
			return mapError("commit transaction", ctx.Err())
		}
		return mapError("commit transaction", err)
	}
	return nil
}

// expired indica que la tx se cerró porque venció el plazo de ctx; database/sql
// hace rollback en ese caso y las llamadas siguientes devuelven sql.ErrTxDone.
func expired(ctx context.Context, err error) bool {
	ctxErr := ctx.Err()
	if ctxErr == nil {
		return false
	}
	return errors.Is(err, sql.ErrTxDone) || errors.Is(err, ctxErr)
}
