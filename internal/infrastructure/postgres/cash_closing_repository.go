package postgres

import (
	"context"
	"fmt"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

var _ repository.CashClosingRepository = (*CashClosingRepo)(nil)

// CashClosingRepo persiste arqueos sobre PostgreSQL (usable con pool o tx).
type CashClosingRepo struct {
	q Querier
}

// NewCashClosingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashClosingRepository(q Querier) *CashClosingRepo {
	return &CashClosingRepo{q: q}
}

const closingColumns = `id, usuario_id, fecha_inicio, fecha_fin, total_tiempo, total_productos, total_descuentos,
	total_servicios_extras, total_general, monto_retirado, monto_cambio, observacion, cantidad_turnos, creado_en`

func scanClosing(row interface{ Scan(...any) error }) (*entity.CashClosing, error) {
	var c entity.CashClosing
	err := row.Scan(&c.ID, &c.UserID, &c.RangeStart, &c.RangeEnd, &c.TotalTime, &c.TotalProducts, &c.TotalDiscounts,
		&c.TotalExtraServices, &c.TotalGeneral, &c.Withdrawn, &c.Change, &c.Note, &c.SessionCount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CashClosingRepo) Create(ctx context.Context, c *entity.CashClosing) error {
	_, err := r.q.Exec(ctx, `INSERT INTO arqueos (`+closingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.UserID, c.RangeStart, c.RangeEnd, c.TotalTime, c.TotalProducts, c.TotalDiscounts,
		c.TotalExtraServices, c.TotalGeneral, c.Withdrawn, c.Change, c.Note, c.SessionCount, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert arqueo: %w", err)
	}
	return nil
}

func (r *CashClosingRepo) GetByID(ctx context.Context, id string) (*entity.CashClosing, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanClosing(r.q.QueryRow(ctx, `SELECT `+closingColumns+` FROM arqueos WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get arqueo: %w", err)
	}
	return c, nil
}

// List devuelve los arqueos de userID (vacío = todos), del más reciente al más antiguo.
func (r *CashClosingRepo) List(ctx context.Context, userID string) ([]*entity.CashClosing, error) {
	query := `SELECT ` + closingColumns + ` FROM arqueos`
	var args []any
	if userID != "" {
		if !validID(userID) {
			return nil, nil
		}
		query += ` WHERE usuario_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY creado_en DESC, id DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list arqueos: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashClosing
	for rows.Next() {
		c, err := scanClosing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan arqueo: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
