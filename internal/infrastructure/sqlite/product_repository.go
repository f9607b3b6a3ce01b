package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Las fechas se guardan como texto RFC3339 en UTC.
const timeLayout = time.RFC3339Nano

type productRow struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Quantity  int64           `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
	CreatedAt string          `db:"created_at"`
	UpdatedAt string          `db:"updated_at"`
}

func (r productRow) toEntity() (*entity.Product, error) {
	created, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("producto %d created_at: %w", r.ID, err)
	}
	updated, err := time.Parse(timeLayout, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("producto %d updated_at: %w", r.ID, err)
	}
	return &entity.Product{
		ID:        r.ID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		Price:     r.Price,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// ProductRepo catálogo de productos sobre SQLite (usable con *sqlx.DB o *sqlx.Tx).
type ProductRepo struct {
	q   sqlx.ExtContext
	now func() time.Time
}

// NewProductRepository construye el adaptador. Pasar db o tx.
func NewProductRepository(q sqlx.ExtContext) *ProductRepo {
	return &ProductRepo{q: q, now: time.Now}
}

// Create persiste un nuevo producto y devuelve el ID asignado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products(name, quantity, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		product.Name, product.Quantity, product.Price.StringFixed(entity.MoneyScale),
		formatTime(product.CreatedAt), formatTime(product.UpdatedAt),
	)
	if err != nil {
		return 0, mapError("insert product", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, mapError("insert product id", err)
	}
	product.ID = id
	return id, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.q, &row, `
		SELECT id, name, quantity, price, created_at, updated_at
		FROM products WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		return nil, mapError("get product", err)
	}
	return row.toEntity()
}

// GetForUpdate lee el producto dentro de la tx. Las transacciones se abren con
// BEGIN IMMEDIATE, así que el bloqueo de escritura ya está tomado y la lectura
// queda serializada igual que un SELECT FOR UPDATE.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// List lista todos los productos por ID ascendente.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var rows []productRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT id, name, quantity, price, created_at, updated_at
		FROM products ORDER BY id`)
	if err != nil {
		return nil, mapError("list products", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		list = append(list, p)
	}
	return list, nil
}

// UpdatePrice actualiza solo el precio del producto.
func (r *ProductRepo) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	return r.updateOne(ctx, "update product price", id,
		`UPDATE products SET price = ?, updated_at = ? WHERE id = ?`,
		price.StringFixed(entity.MoneyScale), formatTime(r.now()), id)
}

// UpdateQuantity escribe la cantidad en stock (motor de inventario, dentro de la tx).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	return r.updateOne(ctx, "update product quantity", id,
		`UPDATE products SET quantity = ?, updated_at = ? WHERE id = ?`,
		quantity, formatTime(r.now()), id)
}

// Delete elimina un producto por ID. Las ventas que lo referencian se conservan.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return r.updateOne(ctx, "delete product", id, `DELETE FROM products WHERE id = ?`, id)
}

func (r *ProductRepo) updateOne(ctx context.Context, op string, id int64, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(op, err)
	}
	if n == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
