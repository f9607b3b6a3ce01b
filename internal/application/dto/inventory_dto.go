package dto

import "github.com/shopspring/decimal"

// StockChangeRequest body para POST /api/inventory/:id/sell y /restock.
type StockChangeRequest struct {
	Quantity int64 `json:"quantity"`
}

// SellResponse resultado de una venta confirmada.
type SellResponse struct {
	SaleID    int64           `json:"sale_id"`
	Total     decimal.Decimal `json:"total"`
	Remaining int64           `json:"remaining"`
}

// RestockResponse cantidad resultante tras el reabastecimiento.
type RestockResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto con stock
// en o por debajo del umbral.
type ReplenishmentSuggestionDTO struct {
	ProductID         int64  `json:"product_id"`
	ProductName       string `json:"product_name"`
	CurrentStock      int64  `json:"current_stock"`
	Threshold         int64  `json:"threshold"`
	IdealStock        int64  `json:"ideal_stock"`         // Threshold * 2
	SuggestedOrderQty int64  `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitsSoldRecently int64  `json:"units_sold_recently"` // volumen en la ventana consultada
	Priority          int    `json:"priority"`            // 1 = más urgente
}
