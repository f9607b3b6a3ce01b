package repository

import (
	"context"

	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y Delete devuelven domain.ErrNotFound si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error
	Delete(ctx context.Context, id int64) error

	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	// Solo tiene sentido sobre un repositorio atado a una transacción (TxRunner).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// UpdateQuantity escribe la nueva cantidad; uso exclusivo del motor de inventario.
	UpdateQuantity(ctx context.Context, id int64, quantity int64) error
}
