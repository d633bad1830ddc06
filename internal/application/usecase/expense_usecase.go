package usecase

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
)

// ExpenseUseCase registra gastos del local.
type ExpenseUseCase struct {
	repo  repository.ExpenseRepository
	clock clock.Clock
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, clk clock.Clock) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, clock: clk}
}

// Create registra un gasto. Cantidad por defecto 1; total = precio × cantidad.
func (uc *ExpenseUseCase) Create(ctx context.Context, actorID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || qty <= 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	e := &entity.Expense{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     in.Price,
		Quantity:  qty,
		Total:     in.Price.Mul(decimal.NewFromInt(int64(qty))),
		CreatedBy: actorID,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List lista los gastos del más reciente al más antiguo.
func (uc *ExpenseUseCase) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Price:     e.Price,
		Quantity:  e.Quantity,
		Total:     e.Total,
		CreatedAt: e.CreatedAt,
	}
}
