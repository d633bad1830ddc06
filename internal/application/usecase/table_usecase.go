package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	"github.com/billartiochichi/billar-api/pkg/clock"
)

// TableUseCase administra mesas. El estado y la hora de inicio se derivan de los turnos.
type TableUseCase struct {
	repo        repository.TableRepository
	sessionRepo repository.SessionRepository
	clock       clock.Clock
}

// NewTableUseCase construye el caso de uso.
func NewTableUseCase(repo repository.TableRepository, sessionRepo repository.SessionRepository, clk clock.Clock) *TableUseCase {
	return &TableUseCase{repo: repo, sessionRepo: sessionRepo, clock: clk}
}

// Create crea una mesa libre.
func (uc *TableUseCase) Create(ctx context.Context, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.HourlyRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	t := &entity.Table{
		ID:         uuid.New().String(),
		Name:       name,
		HourlyRate: in.HourlyRate,
		Status:     entity.TableStatusFree,
		Image:      in.Image,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTableResponse(t, nil), nil
}

// List lista las mesas con la proyección de su turno activo.
func (uc *TableUseCase) List(ctx context.Context) ([]dto.TableResponse, error) {
	tables, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := uc.sessionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	byTable := make(map[string]*entity.Session, len(active))
	for _, s := range active {
		byTable[s.TableID] = s
	}
	out := make([]dto.TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, *toTableResponse(t, byTable[t.ID]))
	}
	return out, nil
}

// GetByID obtiene una mesa con su turno activo.
func (uc *TableUseCase) GetByID(ctx context.Context, id string) (*dto.TableResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTableNotFound
	}
	s, err := uc.sessionRepo.GetActiveByTable(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTableResponse(t, s), nil
}

// Update modifica nombre, tarifa o imagen. Los turnos ya iniciados conservan su tarifa.
func (uc *TableUseCase) Update(ctx context.Context, id string, in dto.UpdateTableRequest) (*dto.TableResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTableNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		t.Name = name
	}
	if in.HourlyRate != nil {
		if in.HourlyRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		t.HourlyRate = *in.HourlyRate
	}
	if in.Image != nil {
		t.Image = *in.Image
	}
	t.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina una mesa sin turno activo.
func (uc *TableUseCase) Delete(ctx context.Context, id string) error {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrTableNotFound
	}
	n, err := uc.sessionRepo.CountActiveByTable(ctx, id)
	if err != nil {
		return err
	}
	if t.Occupied() || n > 0 {
		return domain.ErrTableInUse
	}
	return uc.repo.Delete(ctx, id)
}

func toTableResponse(t *entity.Table, active *entity.Session) *dto.TableResponse {
	out := &dto.TableResponse{
		ID:         t.ID,
		Name:       t.Name,
		HourlyRate: t.HourlyRate,
		Status:     t.Status,
		Image:      t.Image,
	}
	if active != nil {
		start := active.StartedAt
		id, status := active.ID, active.Status
		out.StartedAt = &start
		out.ActiveSession = &id
		out.SessionStatus = &status
		out.PauseStarted = active.PauseStartedAt
		out.PausedSeconds = active.PausedSeconds
	}
	return out
}
