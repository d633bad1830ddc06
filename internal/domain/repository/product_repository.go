package repository

import (
	"context"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update actualiza los datos descriptivos y precios. No modifica Stock.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock. Devuelve domain.ErrInsufficientStock si el resultado sería negativo.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
