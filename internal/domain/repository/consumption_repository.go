package repository

import (
	"context"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// ConsumptionRepository define el puerto de persistencia para líneas de consumo.
type ConsumptionRepository interface {
	Create(ctx context.Context, c *entity.Consumption) error
	GetByID(ctx context.Context, id string) (*entity.Consumption, error)
	// ListBySession devuelve las líneas con ProductName resuelto.
	ListBySession(ctx context.Context, sessionID string) ([]*entity.Consumption, error)
	Delete(ctx context.Context, id string) error
}
