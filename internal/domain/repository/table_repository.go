package repository

import (
	"context"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// TableRepository define el puerto de persistencia para mesas.
// GetByID devuelve (nil, nil) si no existe.
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id string) (*entity.Table, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Table, error)
	List(ctx context.Context) ([]*entity.Table, error)
	// Update modifica nombre, tarifa e imagen; nunca el estado.
	Update(ctx context.Context, table *entity.Table) error
	// SetStatus cambia solo la disponibilidad (libre/ocupada).
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
