package postgres

import (
	"context"
	"fmt"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo persiste líneas de consumo. Guarda el nombre del producto para
// que los reportes sigan mostrándolo si el producto se elimina.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

func (r *ConsumptionRepo) Create(ctx context.Context, c *entity.Consumption) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO consumos (id, turno_id, producto_id, producto_nombre, cantidad, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.SessionID, nullable(c.ProductID), c.ProductName, c.Quantity, c.Subtotal, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert consumo: %w", err)
	}
	return nil
}

const consumptionSelect = `
	SELECT c.id, c.turno_id, c.producto_id, COALESCE(p.nombre, c.producto_nombre), c.cantidad, c.subtotal, c.created_at
	FROM consumos c
	LEFT JOIN productos p ON p.id = c.producto_id`

func scanConsumption(row interface{ Scan(...any) error }) (*entity.Consumption, error) {
	var (
		c         entity.Consumption
		productID *string
	)
	if err := row.Scan(&c.ID, &c.SessionID, &productID, &c.ProductName, &c.Quantity, &c.Subtotal, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.ProductID = deref(productID)
	return &c, nil
}

func (r *ConsumptionRepo) GetByID(ctx context.Context, id string) (*entity.Consumption, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanConsumption(r.q.QueryRow(ctx, consumptionSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumo: %w", err)
	}
	return c, nil
}

func (r *ConsumptionRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.Consumption, error) {
	if !validID(sessionID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, consumptionSelect+` WHERE c.turno_id = $1 ORDER BY c.created_at, c.id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list consumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consumption
	for rows.Next() {
		c, err := scanConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumo: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ConsumptionRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrConsumptionNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM consumos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConsumptionNotFound
	}
	return nil
}
