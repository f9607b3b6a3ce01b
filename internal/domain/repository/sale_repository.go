package repository

import (
	"context"

	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
)

// SaleRepository define el puerto del libro de ventas (solo inserción).
type SaleRepository interface {
	// Append inserta la venta y devuelve su ID creciente. Debe llamarse con un
	// repositorio atado a la misma transacción que descontó el stock.
	Append(ctx context.Context, sale *entity.Sale) (int64, error)
	// ListAll devuelve las ventas de la más reciente a la más antigua.
	ListAll(ctx context.Context) ([]entity.SaleView, error)
}
