package postgres

import (
	"context"

	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Append inserta la venta; el ID lo asigna la identidad de la tabla.
func (r *SaleRepo) Append(ctx context.Context, sale *entity.Sale) (int64, error) {
	if err := sale.Validate(); err != nil {
		return 0, err
	}
	query := `
		INSERT INTO sales (product_id, product_name, quantity, total, sold_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		sale.ProductID, sale.ProductName, sale.Quantity, sale.Total, sale.SoldAt,
	).Scan(&sale.ID)
	if err != nil {
		return 0, mapError("insert sale", err)
	}
	return sale.ID, nil
}

// ListAll lista las ventas por ID descendente. DisplayName usa el nombre actual del
// producto si aún existe.
func (r *SaleRepo) ListAll(ctx context.Context) ([]entity.SaleView, error) {
	query := `
		SELECT s.id, s.product_id, s.product_name, COALESCE(p.name, s.product_name),
		       s.quantity, s.total, s.sold_at
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		ORDER BY s.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("list sales", err)
	}
	defer rows.Close()
	list := make([]entity.SaleView, 0)
	for rows.Next() {
		var v entity.SaleView
		if err := rows.Scan(&v.ID, &v.ProductID, &v.ProductName, &v.DisplayName,
			&v.Quantity, &v.Total, &v.SoldAt); err != nil {
			return nil, mapError("scan sale", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list sales", err)
	}
	return list, nil
}
