package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

type saleRow struct {
	ID          int64           `db:"id"`
	ProductID   int64           `db:"product_id"`
	ProductName string          `db:"product_name"`
	DisplayName string          `db:"display_name"`
	Quantity    int64           `db:"quantity"`
	Total       decimal.Decimal `db:"total"`
	SoldAt      string          `db:"sold_at"`
}

// SaleRepo libro de ventas sobre SQLite (usable con *sqlx.DB o *sqlx.Tx).
type SaleRepo struct {
	q sqlx.ExtContext
}

// NewSaleRepository construye el adaptador. Pasar db o tx.
func NewSaleRepository(q sqlx.ExtContext) *SaleRepo {
	return &SaleRepo{q: q}
}

// Append inserta la venta; AUTOINCREMENT garantiza IDs crecientes.
func (r *SaleRepo) Append(ctx context.Context, sale *entity.Sale) (int64, error) {
	if err := sale.Validate(); err != nil {
		return 0, err
	}
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO sales(product_id, product_name, quantity, total, sold_at)
		VALUES (?, ?, ?, ?, ?)`,
		sale.ProductID, sale.ProductName, sale.Quantity,
		sale.Total.StringFixed(entity.MoneyScale), formatTime(sale.SoldAt),
	)
	if err != nil {
		return 0, mapError("insert sale", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, mapError("insert sale id", err)
	}
	sale.ID = id
	return id, nil
}

// ListAll lista las ventas por ID descendente. DisplayName usa el nombre actual del
// producto si aún existe.
func (r *SaleRepo) ListAll(ctx context.Context) ([]entity.SaleView, error) {
	var rows []saleRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT s.id, s.product_id, s.product_name,
		       COALESCE(p.name, s.product_name) AS display_name,
		       s.quantity, s.total, s.sold_at
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		ORDER BY s.id DESC`)
	if err != nil {
		return nil, mapError("list sales", err)
	}
	list := make([]entity.SaleView, 0, len(rows))
	for _, row := range rows {
		soldAt, err := time.Parse(timeLayout, row.SoldAt)
		if err != nil {
			return nil, fmt.Errorf("%w: venta %d sold_at: %w", domain.ErrStorage, row.ID, err)
		}
		list = append(list, entity.SaleView{
			Sale: entity.Sale{
				ID:          row.ID,
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				Quantity:    row.Quantity,
				Total:       row.Total,
				SoldAt:      soldAt,
			},
			DisplayName: row.DisplayName,
		})
	}
	return list, nil
}
