package repository

import (
	"context"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
