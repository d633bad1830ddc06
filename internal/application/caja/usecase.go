package caja

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	"github.com/billartiochichi/billar-api/pkg/clock"
	"github.com/billartiochichi/billar-api/pkg/dates"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// UseCase cierra caja: suma los turnos cerrados que atendió un usuario en un rango de días.
type UseCase struct {
	txRunner    repository.TxRunner
	closingRepo repository.CashClosingRepository
	userRepo    repository.UserRepository
	receipts    ReceiptRenderer
	clock       clock.Clock
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. receipts puede ser nil si no se exponen comprobantes.
func NewUseCase(
	txRunner repository.TxRunner,
	closingRepo repository.CashClosingRepository,
	userRepo repository.UserRepository,
	receipts ReceiptRenderer,
	clk clock.Clock,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		closingRepo: closingRepo,
		userRepo:    userRepo,
		receipts:    receipts,
		clock:       clk,
		log:         log.Component("arqueo"),
	}
}

// CloseRegister crea el arqueo de actorID para [inicio del día start, fin del día end].
// Se incluyen los turnos cerrados cuya hora de fin cae en el rango y que atendió actorID.
// No marca los turnos como arqueados: dos arqueos con rangos solapados cuentan los mismos turnos.
func (uc *UseCase) CloseRegister(ctx context.Context, actorID string, in dto.CloseRegisterRequest) (*dto.CashClosingResponse, error) {
	if actorID == "" || in.Withdrawn.IsNegative() || in.Change.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	from, to, err := dates.Range(in.DateStart, in.DateEnd)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	now := uc.clock.Now()
	var closing *entity.CashClosing
	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		sessions, err := tx.Sessions.ListClosed(ctx, repository.SessionFilter{
			EndFrom:    from,
			EndTo:      to,
			AttendedBy: actorID,
		})
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return domain.ErrNoMatchingSessions
		}

		c := &entity.CashClosing{
			ID:                 uuid.New().String(),
			UserID:             actorID,
			RangeStart:         from,
			RangeEnd:           to,
			TotalTime:          decimal.Zero,
			TotalProducts:      decimal.Zero,
			TotalDiscounts:     decimal.Zero,
			TotalExtraServices: decimal.Zero,
			TotalGeneral:       decimal.Zero,
			Withdrawn:          in.Withdrawn,
			Change:             in.Change,
			SessionCount:       len(sessions),
			CreatedAt:          now,
		}
		if in.Note != nil {
			c.Note = strings.TrimSpace(*in.Note)
		}
		for _, s := range sessions {
			c.TotalTime = c.TotalTime.Add(s.TimeSubtotal)
			c.TotalProducts = c.TotalProducts.Add(s.ProductsSubtotal)
			c.TotalDiscounts = c.TotalDiscounts.Add(s.Discount)
			c.TotalExtraServices = c.TotalExtraServices.Add(s.ExtraServices)
			c.TotalGeneral = c.TotalGeneral.Add(s.Total)
		}
		if err := tx.CashClosings.Create(ctx, c); err != nil {
			return err
		}
		closing = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("arqueo_id", closing.ID).
		Str("usuario_id", actorID).
		Int("turnos", closing.SessionCount).
		Str("total_general", closing.TotalGeneral.StringFixed(2)).
		Msg("arqueo registrado")
	return toResponse(closing), nil
}

// List devuelve los arqueos del actor; un admin ve los de todos.
func (uc *UseCase) List(ctx context.Context, actorID, role string) ([]dto.CashClosingResponse, error) {
	userID := actorID
	if role == entity.RoleAdmin {
		userID = ""
	}
	list, err := uc.closingRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashClosingResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toResponse(c))
	}
	return out, nil
}

// Get devuelve un arqueo. Un empleado solo puede ver los propios.
func (uc *UseCase) Get(ctx context.Context, id, actorID, role string) (*dto.CashClosingResponse, error) {
	c, err := uc.get(ctx, id, actorID, role)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// Receipt genera el comprobante PDF del arqueo.
func (uc *UseCase) Receipt(ctx context.Context, id, actorID, role string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.ErrInternal
	}
	c, err := uc.get(ctx, id, actorID, role)
	if err != nil {
		return nil, err
	}
	username := c.UserID
	if u, err := uc.userRepo.GetByID(ctx, c.UserID); err == nil && u != nil {
		username = u.Username
	}
	return uc.receipts.RenderClosing(c, username)
}

func (uc *UseCase) get(ctx context.Context, id, actorID, role string) (*entity.CashClosing, error) {
	c, err := uc.closingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || (role != entity.RoleAdmin && c.UserID != actorID) {
		return nil, domain.ErrClosingNotFound
	}
	return c, nil
}

func toResponse(c *entity.CashClosing) *dto.CashClosingResponse {
	var note *string
	if c.Note != "" {
		n := c.Note
		note = &n
	}
	return &dto.CashClosingResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		RangeStart:         c.RangeStart,
		RangeEnd:           c.RangeEnd,
		TotalTime:          c.TotalTime,
		TotalProducts:      c.TotalProducts,
		TotalDiscounts:     c.TotalDiscounts,
		TotalExtraServices: c.TotalExtraServices,
		TotalGeneral:       c.TotalGeneral,
		Withdrawn:          c.Withdrawn,
		Change:             c.Change,
		Note:               note,
		SessionCount:       c.SessionCount,
		CreatedAt:          c.CreatedAt,
	}
}
