package repository

import (
	"context"
	"time"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// SessionFilter criterios para listar turnos cerrados (reportes y arqueos).
type SessionFilter struct {
	EndFrom    time.Time // hora_fin >= EndFrom
	EndTo      time.Time // hora_fin <= EndTo
	StartFrom  *time.Time
	TableID    string // vacío = todas
	AttendedBy string // vacío = todos
}

// SessionRepository define el puerto de persistencia para turnos.
// Los Get devuelven (nil, nil) si no hay coincidencia.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	// GetActiveForUpdate devuelve el turno si está abierto o pausado, bloqueando la fila.
	GetActiveForUpdate(ctx context.Context, id string) (*entity.Session, error)
	// GetActiveByTable devuelve el turno activo de una mesa, bloqueando la fila.
	GetActiveByTable(ctx context.Context, tableID string) (*entity.Session, error)
	ListActive(ctx context.Context) ([]*entity.Session, error)
	ListClosed(ctx context.Context, f SessionFilter) ([]*entity.Session, error)
	Update(ctx context.Context, s *entity.Session) error
	// CountActiveByTable cuenta turnos activos de la mesa sin bloquear filas.
	CountActiveByTable(ctx context.Context, tableID string) (int, error)
}
