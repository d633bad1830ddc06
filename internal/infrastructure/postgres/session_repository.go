package postgres

import (
	"context"
	"fmt"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo persiste turnos. El índice ux_turnos_mesa_activo garantiza un solo turno activo por mesa.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

const sessionColumns = `id, mesa_id, tarifa_hora, hora_inicio, hora_fin, pausa_acumulada_seg, pausa_inicio,
	subtotal_productos, subtotal_tiempo, descuento, servicios_extras, total_final, estado,
	atendido_por_id, cobrado_por_id, updated_at`

func scanSession(row interface{ Scan(...any) error }) (*entity.Session, error) {
	var (
		s                    entity.Session
		attendedBy, closedBy *string
	)
	err := row.Scan(
		&s.ID, &s.TableID, &s.HourlyRate, &s.StartedAt, &s.EndedAt, &s.PausedSeconds, &s.PauseStartedAt,
		&s.ProductsSubtotal, &s.TimeSubtotal, &s.Discount, &s.ExtraServices, &s.Total, &s.Status,
		&attendedBy, &closedBy, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.AttendedBy = deref(attendedBy)
	s.ClosedBy = deref(closedBy)
	return &s, nil
}

func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	query := `INSERT INTO turnos (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TableID, s.HourlyRate, s.StartedAt, s.EndedAt, s.PausedSeconds, s.PauseStartedAt,
		s.ProductsSubtotal, s.TimeSubtotal, s.Discount, s.ExtraServices, s.Total, s.Status,
		nullable(s.AttendedBy), nullable(s.ClosedBy), s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTableOccupied
		}
		return fmt.Errorf("insert turno: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM turnos WHERE id = $1`, id)
}

func (r *SessionRepo) GetActiveForUpdate(ctx context.Context, id string) (*entity.Session, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM turnos
		WHERE id = $1 AND estado IN ('abierto', 'pausado') FOR UPDATE`, id)
}

func (r *SessionRepo) GetActiveByTable(ctx context.Context, tableID string) (*entity.Session, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM turnos
		WHERE mesa_id = $1 AND estado IN ('abierto', 'pausado') FOR UPDATE`, tableID)
}

func (r *SessionRepo) get(ctx context.Context, query, id string) (*entity.Session, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get turno: %w", err)
	}
	return s, nil
}

func (r *SessionRepo) CountActiveByTable(ctx context.Context, tableID string) (int, error) {
	if !validID(tableID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM turnos WHERE mesa_id = $1 AND estado IN ('abierto', 'pausado')`, tableID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count turnos activos: %w", err)
	}
	return n, nil
}

func (r *SessionRepo) ListActive(ctx context.Context) ([]*entity.Session, error) {
	return r.list(ctx, `SELECT `+sessionColumns+` FROM turnos
		WHERE estado IN ('abierto', 'pausado') ORDER BY hora_inicio`)
}

// ListClosed arma el WHERE según los filtros presentes.
func (r *SessionRepo) ListClosed(ctx context.Context, f repository.SessionFilter) ([]*entity.Session, error) {
	if (f.TableID != "" && !validID(f.TableID)) || (f.AttendedBy != "" && !validID(f.AttendedBy)) {
		return nil, nil
	}
	query := `SELECT ` + sessionColumns + ` FROM turnos
		WHERE estado = 'cerrado' AND hora_fin IS NOT NULL AND hora_fin >= $1 AND hora_fin <= $2`
	args := []any{f.EndFrom, f.EndTo}
	pos := 3
	if f.StartFrom != nil {
		query += fmt.Sprintf(" AND hora_inicio >= $%d", pos)
		args = append(args, *f.StartFrom)
		pos++
	}
	if f.TableID != "" {
		query += fmt.Sprintf(" AND mesa_id = $%d", pos)
		args = append(args, f.TableID)
		pos++
	}
	if f.AttendedBy != "" {
		query += fmt.Sprintf(" AND atendido_por_id = $%d", pos)
		args = append(args, f.AttendedBy)
	}
	query += " ORDER BY hora_inicio"
	return r.list(ctx, query, args...)
}

func (r *SessionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Session, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list turnos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan turno: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SessionRepo) Update(ctx context.Context, s *entity.Session) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE turnos SET
			mesa_id = $2, hora_fin = $3, pausa_acumulada_seg = $4, pausa_inicio = $5,
			subtotal_productos = $6, subtotal_tiempo = $7, descuento = $8, servicios_extras = $9,
			total_final = $10, estado = $11, cobrado_por_id = $12, updated_at = $13
		WHERE id = $1`,
		s.ID, s.TableID, s.EndedAt, s.PausedSeconds, s.PauseStartedAt,
		s.ProductsSubtotal, s.TimeSubtotal, s.Discount, s.ExtraServices,
		s.Total, s.Status, nullable(s.ClosedBy), s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDestinationHasSession
		}
		return fmt.Errorf("update turno: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
