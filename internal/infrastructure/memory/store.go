// Package memory implementa los puertos de repositorio en memoria.
// Una transacción toma el lock del store completo, así que las transacciones se serializan.
package memory

import (
	"context"
	"sync"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

type state struct {
	tables       map[string]entity.Table
	sessions     map[string]entity.Session
	consumptions map[string]entity.Consumption
	products     map[string]entity.Product
	movements    []entity.StockMovement
	categories   map[string]entity.Category
	users        map[string]entity.User
	closings     map[string]entity.CashClosing
	expenses     []entity.Expense
}

func newState() *state {
	return &state{
		tables:       make(map[string]entity.Table),
		sessions:     make(map[string]entity.Session),
		consumptions: make(map[string]entity.Consumption),
		products:     make(map[string]entity.Product),
		categories:   make(map[string]entity.Category),
		users:        make(map[string]entity.User),
		closings:     make(map[string]entity.CashClosing),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.tables {
		c.tables[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = copySession(v)
	}
	for k, v := range s.consumptions {
		c.consumptions[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.closings {
		c.closings[k] = v
	}
	c.expenses = append(c.expenses, s.expenses...)
	return c
}

// Store guarda todas las entidades detrás de un único mutex.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// access decide si una operación debe tomar el lock (fuera de transacción) o ya lo tiene.
type access struct {
	st   *Store
	inTx bool
}

func (a access) do(fn func(d *state)) {
	if !a.inTx {
		a.st.mu.Lock()
		defer a.st.mu.Unlock()
	}
	fn(a.st.data)
}

// Run ejecuta fn con el store bloqueado. Si fn devuelve error se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.data.clone()
	a := access{st: s, inTx: true}
	tx := repository.Tx{
		Tables:       &TableRepo{a},
		Sessions:     &SessionRepo{a},
		Consumptions: &ConsumptionRepo{a},
		Products:     &ProductRepo{a},
		Movements:    &StockMovementRepo{a},
		CashClosings: &CashClosingRepo{a},
	}
	if err := fn(tx); err != nil {
		s.data = backup
		return err
	}
	return nil
}

// Repos de uso fuera de transacción.
func (s *Store) Tables() *TableRepo { return &TableRepo{access{st: s}} }
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{access{st: s}} }
func (s *Store) Consumptions() *ConsumptionRepo { return &ConsumptionRepo{access{st: s}} }
func (s *Store) Products() *ProductRepo { return &ProductRepo{access{st: s}} }
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{access{st: s}} }
func (s *Store) CashClosings() *CashClosingRepo { return &CashClosingRepo{access{st: s}} }
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{access{st: s}} }
func (s *Store) Users() *UserRepo { return &UserRepo{access{st: s}} }
func (s *Store) Expenses() *ExpenseRepo { return &ExpenseRepo{access{st: s}} }

var _ repository.TxRunner = (*Store)(nil)
