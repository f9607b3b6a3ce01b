package inventory

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
	"github.com/jhoicas/sarisari-inventory/internal/domain/repository"
	"github.com/jhoicas/sarisari-inventory/pkg/logger"
	"github.com/shopspring/decimal"
)

// Operaciones y resultados reportados al Recorder.
const (
	OpSell    = "sell"
	OpRestock = "restock"

	OutcomeOK                = "ok"
	OutcomeInvalid           = "invalid"
	OutcomeNotFound          = "not_found"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeBusy              = "busy"
	OutcomeStorageError      = "storage_error"
)

// SaleResult resultado de una venta confirmada.
type SaleResult struct {
	SaleID    int64
	Total     decimal.Decimal
	Remaining int64
}

// Engine motor de transacciones de inventario: ventas y reabastecimientos atómicos
// con bloqueo de fila (leer-validar-escribir) y Commit/Rollback vía TxRunner.
// No guarda stock en memoria entre operaciones.
type Engine struct {
	txRunner    TxRunner
	recorder    Recorder
	log         *logger.Logger
	busyRetries int
	busyBackoff time.Duration
	now         func() time.Time
}

// NewEngine construye el motor. recorder puede ser nil.
func NewEngine(txRunner TxRunner, recorder Recorder, log *logger.Logger) *Engine {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		txRunner:    txRunner,
		recorder:    recorder,
		log:         log.Component("inventory"),
		busyBackoff: 50 * time.Millisecond,
		now:         time.Now,
	}
}

// WithBusyRetries activa reintentos con espera lineal cuando el almacenamiento
// responde ErrBusy. Ningún otro error se reintenta.
func (e *Engine) WithBusyRetries(retries int, backoff time.Duration) *Engine {
	if retries < 0 {
		retries = 0
	}
	e.busyRetries = retries
	if backoff > 0 {
		e.busyBackoff = backoff
	}
	return e
}

// Restock suma addQuantity al stock del producto y devuelve la nueva cantidad.
func (e *Engine) Restock(ctx context.Context, productID, addQuantity int64) (int64, error) {
	start := time.Now()
	opID := uuid.NewString()

	if productID <= 0 {
		return 0, e.finish(OpRestock, opID, productID, start, domain.Invalid("id de producto inválido"))
	}
	if addQuantity <= 0 {
		return 0, e.finish(OpRestock, opID, productID, start, domain.Invalid("cantidad a reabastecer debe ser mayor que 0"))
	}

	var newQty int64
	err := e.run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		// Bloquea la fila del producto (SELECT FOR UPDATE) para serializar con otras ventas/reabastecimientos
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if addQuantity > math.MaxInt64-product.Quantity {
			return domain.Invalid("la cantidad resultante excede el máximo permitido")
		}
		qty := product.Quantity + addQuantity
		if err := productRepo.UpdateQuantity(ctx, productID, qty); err != nil {
			return err
		}
		newQty = qty
		return nil
	})
	if err != nil {
		return 0, e.finish(OpRestock, opID, productID, start, err)
	}

	e.log.Info().
		Str("op_id", opID).
		Int64("product_id", productID).
		Int64("added", addQuantity).
		Int64("quantity", newQty).
		Msg("reabastecimiento confirmado")
	e.finish(OpRestock, opID, productID, start, nil)
	return newQty, nil
}

// Sell descuenta count unidades y registra la venta en el libro dentro de la misma
// transacción. Si no hay stock suficiente devuelve *domain.InsufficientStockError
// sin efectos (Rollback).
func (e *Engine) Sell(ctx context.Context, productID, count int64) (*SaleResult, error) {
	start := time.Now()
	opID := uuid.NewString()

	if productID <= 0 {
		return nil, e.finish(OpSell, opID, productID, start, domain.Invalid("id de producto inválido"))
	}
	if count <= 0 {
		return nil, e.finish(OpSell, opID, productID, start, domain.Invalid("cantidad a vender debe ser mayor que 0"))
	}

	var result *SaleResult
	err := e.run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		result = nil
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product.Quantity < count {
			return &domain.InsufficientStockError{
				ProductID: productID,
				Available: product.Quantity,
				Requested: count,
			}
		}

		remaining := product.Quantity - count
		total := entity.LineTotal(product.Price, count)
		if err := productRepo.UpdateQuantity(ctx, productID, remaining); err != nil {
			return err
		}
		// La hora se toma con la fila bloqueada: ordenada con el ID de venta (mejor esfuerzo)
		sale := &entity.Sale{
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    count,
			Total:       total,
			SoldAt:      e.now(),
		}
		saleID, err := saleRepo.Append(ctx, sale)
		if err != nil {
			return err
		}
		result = &SaleResult{SaleID: saleID, Total: total, Remaining: remaining}
		return nil
	})
	if err != nil {
		return nil, e.finish(OpSell, opID, productID, start, err)
	}

	e.log.Info().
		Str("op_id", opID).
		Int64("product_id", productID).
		Int64("sale_id", result.SaleID).
		Int64("quantity", count).
		Str("total", result.Total.StringFixed(entity.MoneyScale)).
		Int64("remaining", result.Remaining).
		Msg("venta confirmada")
	e.finish(OpSell, opID, productID, start, nil)
	return result, nil
}

// run abre el ámbito atómico y reintenta solo ante ErrBusy.
func (e *Engine) run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	for attempt := 0; ; attempt++ {
		err := e.txRunner.Run(ctx, fn)
		if err == nil || !errors.Is(err, domain.ErrBusy) || attempt >= e.busyRetries {
			return err
		}
		wait := time.Duration(attempt+1) * e.busyBackoff
		e.log.Debug().Int("attempt", attempt+1).Dur("wait", wait).Msg("almacenamiento ocupado, reintentando")
		select {
		case <-ctx.Done():
			return err
		case <-time.After(wait):
		}
	}
}

// finish registra métricas y log del resultado y devuelve err sin modificar.
func (e *Engine) finish(op, opID string, productID int64, start time.Time, err error) error {
	outcome := Outcome(err)
	e.recorder.ObserveOperation(op, outcome, time.Since(start))
	if err == nil {
		return nil
	}

	var ev = e.log.Info()
	switch outcome {
	case OutcomeBusy:
		ev = e.log.Warn()
	case OutcomeStorageError:
		ev = e.log.Error()
	}
	ev.Str("op_id", opID).
		Str("op", op).
		Int64("product_id", productID).
		Str("outcome", outcome).
		Err(err).
		Msg("operación de inventario revertida")
	return err
}

// Outcome clasifica un error del motor según la taxonomía de dominio.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeInsufficientStock
	case errors.Is(err, domain.ErrBusy), errors.Is(err, context.DeadlineExceeded):
		return OutcomeBusy
	default:
		return OutcomeStorageError
	}
}

// IsBusinessOutcome indica si err es un resultado de negocio esperado (stock
// insuficiente) y no una falla del sistema.
func IsBusinessOutcome(err error) bool {
	return errors.Is(err, domain.ErrInsufficientStock)
}
