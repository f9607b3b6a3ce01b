package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver SQLite en Go puro
)

const schema = `
CREATE TABLE IF NOT EXISTS products(
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  name       TEXT    NOT NULL CHECK (length(trim(name)) > 0),
  quantity   INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  price      TEXT    NOT NULL,
  created_at TEXT    NOT NULL,
  updated_at TEXT    NOT NULL
);

-- product_id sin FK: la venta puede referirse a un producto ya eliminado.
CREATE TABLE IF NOT EXISTS sales(
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id   INTEGER NOT NULL,
  product_name TEXT    NOT NULL,
  quantity     INTEGER NOT NULL CHECK (quantity > 0),
  total        TEXT    NOT NULL,
  sold_at      TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_product_id ON sales(product_id);
`

// Open abre (o crea) la base SQLite en path y aplica el esquema.
//
// Almacenamiento de un solo escritor: una conexión en el pool y transacciones
// BEGIN IMMEDIATE, así cada transacción del motor tiene el bloqueo de escritura
// desde su primera lectura. busyTimeout acota la espera cuando otro proceso
// (CLI y API sobre el mismo archivo) tiene el bloqueo.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn(path, busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return db, nil
}

func dsn(path string, busyTimeout time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}
