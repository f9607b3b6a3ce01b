package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la tienda.
// Quantity solo la modifica el motor de inventario (ventas y reabastecimientos).
type Product struct {
	ID        int64
	Name      string
	Quantity  int64
	Price     decimal.Decimal // precio unitario de venta, escala MoneyScale
	CreatedAt time.Time
	UpdatedAt time.Time
}
