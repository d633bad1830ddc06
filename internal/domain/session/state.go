package session

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// New crea un turno abierto en la mesa indicada, con la tarifa copiada al momento de iniciar.
func New(id, tableID string, hourlyRate decimal.Decimal, attendedBy string, now time.Time) *entity.Session {
	return &entity.Session{
		ID:               id,
		TableID:          tableID,
		HourlyRate:       hourlyRate,
		StartedAt:        now,
		ProductsSubtotal: decimal.Zero,
		TimeSubtotal:     decimal.Zero,
		Discount:         decimal.Zero,
		ExtraServices:    decimal.Zero,
		Total:            decimal.Zero,
		Status:           entity.SessionOpen,
		AttendedBy:       attendedBy,
		UpdatedAt:        now,
	}
}

// Pause pone el turno en pausa. Si ya hay una pausa activa no cambia el inicio de
// la pausa; solo corrige el estado si estaba desincronizado. Devuelve true si hubo cambios.
func Pause(s *entity.Session, now time.Time) (bool, error) {
	if !s.Active() {
		return false, domain.ErrSessionNotActive
	}
	if s.PauseStartedAt != nil {
		if s.Status == entity.SessionPaused {
			return false, nil
		}
		s.Status = entity.SessionPaused
		s.UpdatedAt = now
		return true, nil
	}
	start := now
	s.PauseStartedAt = &start
	s.Status = entity.SessionPaused
	s.UpdatedAt = now
	return true, nil
}

// Resume reanuda el turno sumando la pausa en curso al acumulado.
// Sin pausa registrada solo deja el estado en abierto.
func Resume(s *entity.Session, now time.Time) error {
	if !s.Active() {
		return domain.ErrSessionNotActive
	}
	foldPause(s, now)
	s.Status = entity.SessionOpen
	s.UpdatedAt = now
	return nil
}

// Close cierra el turno: fija la hora de fin, consolida la pausa en curso, calcula
// el subtotal de tiempo con la tarifa escalonada y el total final.
func Close(s *entity.Session, now time.Time, discount, extraServices decimal.Decimal, closedBy string) error {
	if !s.Active() {
		return domain.ErrSessionNotActive
	}
	if discount.IsNegative() || extraServices.IsNegative() {
		return domain.ErrInvalidInput
	}
	end := now
	s.EndedAt = &end
	foldPause(s, end)

	s.Discount = discount
	s.ExtraServices = extraServices
	Recompute(s, end)
	s.ClosedBy = closedBy
	s.Status = entity.SessionClosed
	s.UpdatedAt = now
	return nil
}

// foldPause suma la pausa en curso (solo la parte no negativa) al acumulado y la limpia.
func foldPause(s *entity.Session, now time.Time) {
	if s.PauseStartedAt == nil {
		return
	}
	s.PausedSeconds += elapsedSeconds(*s.PauseStartedAt, now)
	s.PauseStartedAt = nil
}
