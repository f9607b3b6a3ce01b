package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/application/dto"
	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
)

// Límites de los parámetros de la lista de reposición.
const (
	MaxReplenishmentThreshold int64 = 1_000_000
	MaxReplenishmentDays      int   = 3650
)

// ReplenishmentUseCase genera la lista de reposición: productos con stock en o por
// debajo del umbral, priorizados por volumen de ventas reciente. Solo lectura.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, saleRepo: saleRepo, now: time.Now}
}

// GenerateReplenishmentList devuelve los productos con Quantity <= threshold, con la
// cantidad sugerida para llegar a 2×threshold. days limita las ventas consideradas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(
	ctx context.Context,
	threshold int64,
	days int,
) ([]dto.ReplenishmentSuggestionDTO, error) {
	if threshold < 0 || threshold > MaxReplenishmentThreshold {
		return nil, domain.Invalid("umbral debe estar entre 0 y %d", MaxReplenishmentThreshold)
	}
	if days < 1 || days > MaxReplenishmentDays {
		return nil, domain.Invalid("días debe estar entre 1 y %d", MaxReplenishmentDays)
	}
	window := time.Duration(days) * 24 * time.Hour

	// 1. Productos en o bajo el umbral
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		if p.Quantity > threshold {
			continue
		}
		ideal := threshold * 2
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			ProductName:       p.Name,
			CurrentStock:      p.Quantity,
			Threshold:         threshold,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		})
	}
	if len(suggestions) == 0 {
		return suggestions, nil
	}

	// 2. Unidades vendidas en la ventana por producto (desde el libro)
	sales, err := uc.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	since := uc.now().Add(-window)
	soldByID := make(map[int64]int64)
	for _, s := range sales {
		if s.SoldAt.Before(since) {
			continue
		}
		soldByID[s.ProductID] += s.Quantity
	}
	for i := range suggestions {
		suggestions[i].UnitsSoldRecently = soldByID[suggestions[i].ProductID]
	}

	// 3. Ordenar: mayor volumen reciente, luego menor stock, luego ID
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldRecently != b.UnitsSoldRecently {
			return a.UnitsSoldRecently > b.UnitsSoldRecently
		}
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock < b.CurrentStock
		}
		return a.ProductID < b.ProductID
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
