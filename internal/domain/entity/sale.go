package entity

import (
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/shopspring/decimal"
)

// SaleTimeLayout formato de hora de 12 horas usado en el historial de ventas.
const SaleTimeLayout = "2006-01-02 3:04 PM"

// Sale representa una venta registrada en el libro de ventas (solo inserción).
// ProductName y Total son instantáneas del momento de la venta: no cambian
// si el producto se renombra, cambia de precio o se elimina.
type Sale struct {
	ID          int64
	ProductID   int64 // puede apuntar a un producto ya eliminado
	ProductName string
	Quantity    int64
	Total       decimal.Decimal
	SoldAt      time.Time
}

// Validate verifica las condiciones para registrar la venta en el libro.
func (s *Sale) Validate() error {
	if s.Quantity <= 0 {
		return domain.Invalid("cantidad vendida debe ser mayor que 0")
	}
	if s.Total.IsNegative() {
		return domain.Invalid("total no puede ser negativo")
	}
	if s.ProductName == "" {
		return domain.Invalid("nombre de producto requerido")
	}
	return nil
}

// SaleView venta con el nombre a mostrar en el historial: el nombre actual del
// producto si todavía existe, si no la instantánea guardada.
type SaleView struct {
	Sale
	DisplayName string
}

// FormatSaleTime formatea la hora de venta en hora local con AM/PM.
func FormatSaleTime(t time.Time) string {
	return t.Local().Format(SaleTimeLayout)
}
