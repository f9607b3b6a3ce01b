package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase catálogo de productos. La cantidad solo se fija al crear; después se
// modifica exclusivamente con el motor de inventario.
type UseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Create valida y persiste un producto nuevo; devuelve su ID.
func (uc *UseCase) Create(ctx context.Context, name string, quantity int64, price decimal.Decimal) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.Invalid("nombre requerido")
	}
	if quantity < 0 {
		return 0, domain.Invalid("cantidad no puede ser negativa")
	}
	if price.IsNegative() {
		return 0, domain.Invalid("precio no puede ser negativo")
	}
	now := uc.now()
	product := &entity.Product{
		Name:      name,
		Quantity:  quantity,
		Price:     entity.NormalizeMoney(price),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return uc.repo.Create(ctx, product)
}

// Get obtiene un producto por ID (domain.ErrNotFound si no existe).
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return uc.repo.GetByID(ctx, id)
}

// ListAll lista todos los productos ordenados por ID ascendente.
func (uc *UseCase) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return uc.repo.List(ctx)
}

// UpdatePrice cambia el precio unitario. Las ventas ya registradas conservan su total.
func (uc *UseCase) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.Invalid("precio no puede ser negativo")
	}
	if id <= 0 {
		return domain.ErrNotFound
	}
	return uc.repo.UpdatePrice(ctx, id, entity.NormalizeMoney(price))
}

// Delete elimina el producto. Se permite aunque tenga ventas: el libro guarda
// nombre y total como instantáneas.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
