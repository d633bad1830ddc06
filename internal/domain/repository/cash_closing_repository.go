package repository

import (
	"context"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// CashClosingRepository persiste arqueos de caja. No hay Update: un arqueo es inmutable.
type CashClosingRepository interface {
	Create(ctx context.Context, c *entity.CashClosing) error
	GetByID(ctx context.Context, id string) (*entity.CashClosing, error)
	// List devuelve los arqueos del usuario (vacío = todos), del más reciente al más antiguo.
	List(ctx context.Context, userID string) ([]*entity.CashClosing, error)
}
