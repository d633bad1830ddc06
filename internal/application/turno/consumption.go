package turno

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

// AddConsumption vende quantity unidades del producto dentro del turno activo.
// Descuenta stock, crea la línea y suma su subtotal al turno en una sola transacción.
// El total del turno no se recalcula aquí; Preview o Close lo derivan.
func (uc *UseCase) AddConsumption(ctx context.Context, sessionID, productID string, quantity int, actorID string) (*dto.SessionResponse, error) {
	if productID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	var (
		out   *entity.Session
		lines []*entity.Consumption
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		s, err := tx.Sessions.GetActiveForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrSessionNotActive
		}
		product, err := tx.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.Stock < quantity {
			return domain.ErrInsufficientStock
		}

		subtotal := product.SalePrice.Mul(decimal.NewFromInt(int64(quantity)))
		line := &entity.Consumption{
			ID:          uuid.New().String(),
			SessionID:   s.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			Subtotal:    subtotal,
			CreatedAt:   now,
		}
		if err := tx.Consumptions.Create(ctx, line); err != nil {
			return err
		}
		if err := uc.ledger.RegisterOUTInTx(ctx, tx, product.ID, quantity, line.ID, actorID, now); err != nil {
			return err
		}
		s.ProductsSubtotal = s.ProductsSubtotal.Add(subtotal)
		s.UpdatedAt = now
		if err := tx.Sessions.Update(ctx, s); err != nil {
			return err
		}
		lines, err = tx.Consumptions.ListBySession(ctx, s.ID)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("turno_id", sessionID).Str("producto_id", productID).Int("cantidad", quantity).Msg("consumo agregado")
	return toSessionResponse(out, lines, now), nil
}

// RemoveConsumption elimina una línea de consumo y devuelve su cantidad al stock.
// Si el producto ya no existe solo se elimina la línea.
// El subtotal de productos del turno no se modifica.
func (uc *UseCase) RemoveConsumption(ctx context.Context, consumptionID, actorID string) error {
	now := uc.clock.Now()
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		line, err := tx.Consumptions.GetByID(ctx, consumptionID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrConsumptionNotFound
		}
		if line.ProductID != "" {
			product, err := tx.Products.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product != nil {
				if err := uc.ledger.RegisterINInTx(ctx, tx, product.ID, line.Quantity, line.ID, actorID, now); err != nil {
					return err
				}
			}
		}
		return tx.Consumptions.Delete(ctx, line.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Debug().Str("consumo_id", consumptionID).Msg("consumo eliminado")
	return nil
}

// ListConsumptions lista las líneas de un turno.
func (uc *UseCase) ListConsumptions(ctx context.Context, sessionID string) ([]dto.ConsumptionResponse, error) {
	lines, err := uc.consumptionRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toConsumptionResponses(lines), nil
}
