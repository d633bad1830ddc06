package repository

import (
	"context"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	List(ctx context.Context) ([]*entity.Expense, error)
}
