package turno

import (
	"context"
	"errors"
	"sort"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

// Transfer mueve el turno activo de la mesa origen a la mesa destino.
// Todas las validaciones ocurren antes de mutar; un fallo al confirmar se reporta como ErrTransferFailed.
func (uc *UseCase) Transfer(ctx context.Context, sourceTableID, destTableID string) (*dto.TransferResponse, error) {
	if sourceTableID == "" || destTableID == "" {
		return nil, domain.ErrInvalidInput
	}
	if sourceTableID == destTableID {
		return nil, domain.ErrSameTable
	}
	now := uc.clock.Now()
	var moved *entity.Session
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		s, err := tx.Sessions.GetActiveByTable(ctx, sourceTableID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNoActiveSession
		}

		// Mesas bloqueadas en orden de ID para que dos transferencias cruzadas no se bloqueen entre sí.
		ids := []string{sourceTableID, destTableID}
		sort.Strings(ids)
		tables := make(map[string]*entity.Table, 2)
		for _, id := range ids {
			t, err := tx.Tables.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			tables[id] = t
		}
		if tables[sourceTableID] == nil || tables[destTableID] == nil {
			return domain.ErrTableNotFound
		}
		if tables[destTableID].Occupied() {
			return domain.ErrDestinationOccupied
		}
		n, err := tx.Sessions.CountActiveByTable(ctx, destTableID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrDestinationHasSession
		}

		s.TableID = destTableID
		s.UpdatedAt = now
		if err := tx.Sessions.Update(ctx, s); err != nil {
			return err
		}
		if err := tx.Tables.SetStatus(ctx, sourceTableID, entity.TableStatusFree); err != nil {
			return err
		}
		if err := tx.Tables.SetStatus(ctx, destTableID, entity.TableStatusOccupied); err != nil {
			return err
		}
		moved = s
		return nil
	})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("mesa_origen_id", sourceTableID).Str("mesa_destino_id", destTableID).Msg("transferir turno")
		return nil, domain.ErrTransferFailed
	}
	uc.log.Info().Str("turno_id", moved.ID).Str("mesa_origen_id", sourceTableID).Str("mesa_destino_id", destTableID).Msg("turno transferido")
	return &dto.TransferResponse{
		Message:            "Turno transferido correctamente",
		SessionID:          moved.ID,
		SourceTableID:      sourceTableID,
		DestinationTableID: destTableID,
	}, nil
}
