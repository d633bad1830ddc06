package postgres

import (
	"context"
	"fmt"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

var _ repository.TableRepository = (*TableRepo)(nil)

// TableRepo implementación del puerto TableRepository sobre PostgreSQL (usable con pool o tx).
type TableRepo struct {
	q Querier
}

// NewTableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

const tableColumns = `id, nombre, tarifa_por_hora, estado, imagen, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }) (*entity.Table, error) {
	var t entity.Table
	if err := row.Scan(&t.ID, &t.Name, &t.HourlyRate, &t.Status, &t.Image, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepo) Create(ctx context.Context, t *entity.Table) error {
	query := `INSERT INTO mesas (` + tableColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Name, t.HourlyRate, t.Status, t.Image, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert mesa: %w", err)
	}
	return nil
}

func (r *TableRepo) GetByID(ctx context.Context, id string) (*entity.Table, error) {
	return r.get(ctx, `SELECT `+tableColumns+` FROM mesas WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *TableRepo) GetForUpdate(ctx context.Context, id string) (*entity.Table, error) {
	return r.get(ctx, `SELECT `+tableColumns+` FROM mesas WHERE id = $1 FOR UPDATE`, id)
}

func (r *TableRepo) get(ctx context.Context, query, id string) (*entity.Table, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTable(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mesa: %w", err)
	}
	return t, nil
}

func (r *TableRepo) List(ctx context.Context) ([]*entity.Table, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tableColumns+` FROM mesas ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list mesas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mesa: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TableRepo) Update(ctx context.Context, t *entity.Table) error {
	if !validID(t.ID) {
		return domain.ErrTableNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE mesas SET nombre = $2, tarifa_por_hora = $3, imagen = $4, updated_at = $5 WHERE id = $1`,
		t.ID, t.Name, t.HourlyRate, t.Image, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update mesa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}

func (r *TableRepo) SetStatus(ctx context.Context, id, status string) error {
	if !validID(id) {
		return domain.ErrTableNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE mesas SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado mesa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}

// Delete falla con ErrTableHasHistory si algún turno, aunque esté cerrado, referencia la mesa.
func (r *TableRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrTableNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM mesas WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTableHasHistory
		}
		return fmt.Errorf("delete mesa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}
