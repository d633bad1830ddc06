package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto del local.
type Expense struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Total     decimal.Decimal // Price × Quantity
	CreatedBy string
	CreatedAt time.Time
}
