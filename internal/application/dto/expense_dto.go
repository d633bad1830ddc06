package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	Name     string          `json:"nombre" validate:"required,max=200"`
	Price    decimal.Decimal `json:"precio" validate:"gte=0"`
	Quantity *int            `json:"cantidad"` // nil = 1
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"nombre"`
	Price     decimal.Decimal `json:"precio"`
	Quantity  int             `json:"cantidad"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
