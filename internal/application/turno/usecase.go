package turno

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	"github.com/billartiochichi/billar-api/internal/domain/session"
	"github.com/billartiochichi/billar-api/pkg/clock"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// UseCase orquesta el ciclo de vida de los turnos: inicio, pausa, consumos, cierre y transferencia.
// Toda mutación corre en una transacción; el orden de bloqueo es turno, mesa, producto.
type UseCase struct {
	txRunner        repository.TxRunner
	sessionRepo     repository.SessionRepository
	consumptionRepo repository.ConsumptionRepository
	ledger          StockLedger
	clock           clock.Clock
	log             *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	sessionRepo repository.SessionRepository,
	consumptionRepo repository.ConsumptionRepository,
	ledger StockLedger,
	clk clock.Clock,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		sessionRepo:     sessionRepo,
		consumptionRepo: consumptionRepo,
		ledger:          ledger,
		clock:           clk,
		log:             log.Component("turnos"),
	}
}

// Start abre un turno en una mesa libre y la marca ocupada.
// Si hourlyRate es cero se copia la tarifa vigente de la mesa.
func (uc *UseCase) Start(ctx context.Context, tableID string, hourlyRate decimal.Decimal, actorID string) (*dto.SessionResponse, error) {
	if tableID == "" || hourlyRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	var created *entity.Session
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		table, err := tx.Tables.GetForUpdate(ctx, tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.ErrTableNotFound
		}
		if table.Occupied() {
			return domain.ErrTableOccupied
		}
		active, err := tx.Sessions.CountActiveByTable(ctx, tableID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrTableOccupied
		}

		rate := hourlyRate
		if rate.IsZero() {
			rate = table.HourlyRate
		}
		s := session.New(uuid.New().String(), tableID, rate, actorID, now)
		if err := tx.Sessions.Create(ctx, s); err != nil {
			return err
		}
		if err := tx.Tables.SetStatus(ctx, tableID, entity.TableStatusOccupied); err != nil {
			return err
		}
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("turno_id", created.ID).Str("mesa_id", tableID).Str("usuario_id", actorID).Msg("turno iniciado")
	return toSessionResponse(created, nil, now), nil
}

// Pause pausa el turno. Repetir la pausa no reinicia el contador.
func (uc *UseCase) Pause(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, id, func(s *entity.Session, now time.Time) (bool, error) {
		return session.Pause(s, now)
	})
}

// Resume reanuda el turno sumando la pausa en curso al acumulado.
func (uc *UseCase) Resume(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, id, func(s *entity.Session, now time.Time) (bool, error) {
		if err := session.Resume(s, now); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Close cobra el turno, congela sus montos y libera la mesa.
func (uc *UseCase) Close(ctx context.Context, id string, discount, extraServices decimal.Decimal, actorID string) (*dto.SessionResponse, error) {
	now := uc.clock.Now()
	var (
		closed *entity.Session
		lines  []*entity.Consumption
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		s, err := tx.Sessions.GetActiveForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrSessionNotActive
		}
		if err := session.Close(s, now, discount, extraServices, actorID); err != nil {
			return err
		}
		if err := tx.Sessions.Update(ctx, s); err != nil {
			return err
		}
		table, err := tx.Tables.GetForUpdate(ctx, s.TableID)
		if err != nil {
			return err
		}
		if table != nil {
			if err := tx.Tables.SetStatus(ctx, table.ID, entity.TableStatusFree); err != nil {
				return err
			}
		}
		lines, err = tx.Consumptions.ListBySession(ctx, s.ID)
		if err != nil {
			return err
		}
		closed = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("turno_id", closed.ID).
		Str("mesa_id", closed.TableID).
		Str("total", closed.Total.StringFixed(2)).
		Str("cobrado_por", actorID).
		Msg("turno cerrado")
	return toSessionResponse(closed, lines, now), nil
}

// Preview calcula el subtotal de tiempo y el total a la hora actual.
// Para un turno activo persiste los montos recalculados; un turno cerrado se devuelve tal cual.
func (uc *UseCase) Preview(ctx context.Context, id string) (*dto.SessionResponse, error) {
	now := uc.clock.Now()
	var (
		out   *entity.Session
		lines []*entity.Consumption
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		s, err := tx.Sessions.GetActiveForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s != nil {
			session.Recompute(s, now)
			s.UpdatedAt = now
			if err := tx.Sessions.Update(ctx, s); err != nil {
				return err
			}
		} else {
			s, err = tx.Sessions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if s == nil {
				return domain.ErrSessionNotFound
			}
		}
		lines, err = tx.Consumptions.ListBySession(ctx, s.ID)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(out, lines, now), nil
}

// Get devuelve el snapshot de un turno sin modificarlo.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	s, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}
	lines, err := uc.consumptionRepo.ListBySession(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(s, lines, uc.clock.Now()), nil
}

// ListActive lista los turnos abiertos o pausados con sus consumos.
func (uc *UseCase) ListActive(ctx context.Context) ([]dto.SessionResponse, error) {
	list, err := uc.sessionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	out := make([]dto.SessionResponse, 0, len(list))
	for _, s := range list {
		lines, err := uc.consumptionRepo.ListBySession(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toSessionResponse(s, lines, now))
	}
	return out, nil
}

// mutate aplica una transición de estado sobre el turno activo bloqueado.
// Solo persiste si la transición reporta cambios.
func (uc *UseCase) mutate(ctx context.Context, id string, fn func(s *entity.Session, now time.Time) (bool, error)) (*dto.SessionResponse, error) {
	now := uc.clock.Now()
	var (
		out   *entity.Session
		lines []*entity.Consumption
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		s, err := tx.Sessions.GetActiveForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrSessionNotActive
		}
		changed, err := fn(s, now)
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Sessions.Update(ctx, s); err != nil {
				return err
			}
		}
		lines, err = tx.Consumptions.ListBySession(ctx, s.ID)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(out, lines, now), nil
}
