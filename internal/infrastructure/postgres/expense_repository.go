package postgres

import (
	"context"
	"fmt"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

type ExpenseRepo struct {
	q Querier
}

func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO gastos (id, nombre, precio, cantidad, total, creado_por, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Name, e.Price, e.Quantity, e.Total, nullable(e.CreatedBy), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert gasto: %w", err)
	}
	return nil
}

// List devuelve los gastos del más reciente al más antiguo.
func (r *ExpenseRepo) List(ctx context.Context) ([]*entity.Expense, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre, precio, cantidad, total, creado_por, creado_en
		FROM gastos ORDER BY creado_en DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var (
			e         entity.Expense
			createdBy *string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Price, &e.Quantity, &e.Total, &createdBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan gasto: %w", err)
		}
		e.CreatedBy = deref(createdBy)
		list = append(list, &e)
	}
	return list, rows.Err()
}
