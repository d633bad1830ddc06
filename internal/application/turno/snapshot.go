package turno

import (
	"time"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/session"
)

// toSessionResponse arma el snapshot. Los minutos efectivos y la pausa total se
// evalúan a now para turnos activos y a la hora de fin para turnos cerrados.
func toSessionResponse(s *entity.Session, lines []*entity.Consumption, now time.Time) *dto.SessionResponse {
	asOf := session.AsOf(s, now)
	return &dto.SessionResponse{
		ID:                s.ID,
		TableID:           s.TableID,
		StartedAt:         s.StartedAt,
		EndedAt:           s.EndedAt,
		HourlyRate:        s.HourlyRate,
		TimeSubtotal:      s.TimeSubtotal,
		ProductsSubtotal:  s.ProductsSubtotal,
		ExtraServices:     s.ExtraServices,
		Discount:          s.Discount,
		Total:             s.Total,
		Status:            s.Status,
		PauseStartedAt:    s.PauseStartedAt,
		PausedSeconds:     s.PausedSeconds,
		PauseTotalSeconds: session.PauseSeconds(s, asOf),
		EffectiveMinutes:  session.EffectiveMinutes(s, asOf, nil),
		AttendedBy:        s.AttendedBy,
		ClosedBy:          s.ClosedBy,
		Consumptions:      toConsumptionResponses(lines),
	}
}

func toConsumptionResponses(lines []*entity.Consumption) []dto.ConsumptionResponse {
	out := make([]dto.ConsumptionResponse, 0, len(lines))
	for _, c := range lines {
		out = append(out, dto.ConsumptionResponse{
			ID:          c.ID,
			SessionID:   c.SessionID,
			ProductID:   c.ProductID,
			ProductName: c.ProductName,
			Quantity:    c.Quantity,
			Subtotal:    c.Subtotal,
		})
	}
	return out
}
