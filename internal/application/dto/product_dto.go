package dto

import (
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Cantidad y precio son
// punteros para distinguir un campo ausente de un cero explícito.
type CreateProductRequest struct {
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	Quantity *int64           `json:"quantity" validate:"required,min=0"`
	Price    *decimal.Decimal `json:"price" validate:"required"`
}

// UpdatePriceRequest entrada para cambiar el precio (la cantidad no se edita aquí).
type UpdatePriceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

// CreatedResponse ID asignado a un recurso nuevo.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToProductResponse convierte la entidad en la salida HTTP/CLI.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductList convierte una lista de entidades.
func ToProductList(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}
