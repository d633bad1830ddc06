package repository

import "context"

// Tx agrupa los repositorios atados a una misma transacción.
// Todo lo escrito a través de ellos se confirma o se descarta junto.
type Tx struct {
	Tables       TableRepository
	Sessions     SessionRepository
	Consumptions ConsumptionRepository
	Products     ProductRepository
	Movements    StockMovementRepository
	CashClosings CashClosingRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Tx) error) error
}
