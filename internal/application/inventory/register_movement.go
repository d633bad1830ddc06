package inventory

import (
	"context"
	"time"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// AdjustStockFromRequest adapta el request HTTP al caso de uso AdjustStock.
func (uc *StockLedgerUseCase) AdjustStockFromRequest(ctx context.Context, userID, productID string, in dto.StockDeltaRequest) (*dto.ProductResponse, error) {
	product, err := uc.AdjustStock(ctx, productID, in.Delta, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		PurchasePrice: product.PurchasePrice,
		SalePrice:     product.SalePrice,
		Stock:         product.Stock,
		Image:         product.Image,
		CategoryID:    product.CategoryID,
	}, nil
}

// ListMovementsResponse adapta ListMovements a la salida HTTP.
func (uc *StockLedgerUseCase) ListMovementsResponse(ctx context.Context, productID string, limit, offset int) ([]dto.StockMovementResponse, error) {
	list, err := uc.ListMovements(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reference: m.Reference,
		Date:      m.Date.Format(time.DateTime),
		CreatedBy: m.CreatedBy,
	}
}
