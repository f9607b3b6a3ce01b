package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Es el único camino por el que
// el motor de inventario escribe stock o ventas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Recorder recibe el resultado de cada operación del motor (métricas).
type Recorder interface {
	ObserveOperation(op, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string, time.Duration) {}
