package dto

import (
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleResponse venta del historial.
type SaleResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"` // instantánea al vender
	DisplayName string          `json:"display_name"` // nombre actual si el producto existe
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	SoldAt      time.Time       `json:"sold_at"`
	SoldAtLocal string          `json:"sold_at_local"` // 2006-01-02 3:04 PM
}

// SalesReport historial completo con totales acumulados.
type SalesReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Sales       []SaleResponse  `json:"sales"`
	TotalUnits  int64           `json:"total_units"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// ToSaleResponse convierte una venta del libro.
func ToSaleResponse(s entity.SaleView) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		DisplayName: s.DisplayName,
		Quantity:    s.Quantity,
		Total:       s.Total,
		SoldAt:      s.SoldAt,
		SoldAtLocal: entity.FormatSaleTime(s.SoldAt),
	}
}
