package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	"github.com/billartiochichi/billar-api/pkg/clock"
)

// StockLedgerUseCase mantiene el stock de productos y su bitácora de movimientos.
// Cada cambio de stock y su movimiento se escriben en la misma transacción.
type StockLedgerUseCase struct {
	txRunner     repository.TxRunner
	movementRepo repository.StockMovementRepository
	clock        clock.Clock
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner repository.TxRunner,
	movementRepo repository.StockMovementRepository,
	clk clock.Clock,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		clock:        clk,
	}
}

// RegisterOUTInTx descuenta quantity del stock usando los repositorios de la transacción del caller.
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
// reference suele ser el ID de la línea de consumo.
func (uc *StockLedgerUseCase) RegisterOUTInTx(
	ctx context.Context,
	tx repository.Tx,
	productID string,
	quantity int,
	reference, userID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.apply(ctx, tx, productID, -quantity, entity.MovementTypeOUT, reference, userID, now)
}

// RegisterINInTx devuelve quantity al stock (reversión de un consumo) en la transacción del caller.
func (uc *StockLedgerUseCase) RegisterINInTx(
	ctx context.Context,
	tx repository.Tx,
	productID string,
	quantity int,
	reference, userID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.apply(ctx, tx, productID, quantity, entity.MovementTypeIN, reference, userID, now)
}

// AdjustStock aplica un ajuste manual (positivo o negativo) con bloqueo de fila.
// Rechaza el ajuste si el stock resultante sería negativo.
func (uc *StockLedgerUseCase) AdjustStock(ctx context.Context, productID string, delta int, userID string) (*entity.Product, error) {
	if productID == "" || delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		product, err := tx.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.Stock+delta < 0 {
			return domain.ErrInsufficientStock
		}
		if err := uc.apply(ctx, tx, productID, delta, entity.MovementTypeADJUSTMENT, "", userID, now); err != nil {
			return err
		}
		product.Stock += delta
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovements lista los movimientos de un producto, del más reciente al más antiguo.
func (uc *StockLedgerUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movementRepo.ListByProduct(ctx, productID, limit, offset)
}

func (uc *StockLedgerUseCase) apply(
	ctx context.Context,
	tx repository.Tx,
	productID string,
	delta int,
	movType, reference, userID string,
	now time.Time,
) error {
	if _, err := tx.Products.AdjustStock(ctx, productID, delta); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      movType,
		Quantity:  delta,
		Reference: reference,
		Date:      now,
		CreatedBy: userID,
	}
	return tx.Movements.Create(ctx, mov)
}
