package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ a access }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	var err error
	r.a.do(func(d *state) {
		for _, other := range d.categories {
			if strings.EqualFold(other.Name, c.Name) {
				err = domain.ErrDuplicate
				return
			}
		}
		d.categories[c.ID] = *c
	})
	return err
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.a.do(func(d *state) {
		if c, ok := d.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	r.a.do(func(d *state) {
		for _, c := range d.categories {
			if strings.EqualFold(c.Name, name) {
				c := c
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	r.a.do(func(d *state) {
		for _, c := range d.categories {
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.categories[c.ID]; !ok {
			err = domain.ErrCategoryNotFound
			return
		}
		for id, other := range d.categories {
			if id != c.ID && strings.EqualFold(other.Name, c.Name) {
				err = domain.ErrDuplicate
				return
			}
		}
		d.categories[c.ID] = *c
	})
	return err
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.categories[id]; !ok {
			err = domain.ErrCategoryNotFound
			return
		}
		delete(d.categories, id)
		// igual que ON DELETE SET NULL
		for pid, p := range d.products {
			if p.CategoryID == id {
				p.CategoryID = ""
				d.products[pid] = p
			}
		}
	})
	return err
}

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ a access }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	var err error
	r.a.do(func(d *state) {
		for _, other := range d.users {
			if other.Username == u.Username {
				err = domain.ErrDuplicate
				return
			}
		}
		d.users[u.ID] = *u
	})
	return err
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.a.do(func(d *state) {
		if u, ok := d.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.a.do(func(d *state) {
		for _, u := range d.users {
			if u.Username == username {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.users[u.ID]; !ok {
			err = domain.ErrUserNotFound
			return
		}
		for id, other := range d.users {
			if id != u.ID && other.Username == u.Username {
				err = domain.ErrDuplicate
				return
			}
		}
		d.users[u.ID] = *u
	})
	return err
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	r.a.do(func(d *state) {
		for _, u := range d.users {
			u := u
			out = append(out, &u)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// ExpenseRepo implementa repository.ExpenseRepository.
type ExpenseRepo struct{ a access }

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.a.do(func(d *state) {
		d.expenses = append(d.expenses, *e)
	})
	return nil
}

func (r *ExpenseRepo) List(_ context.Context) ([]*entity.Expense, error) {
	var out []*entity.Expense
	r.a.do(func(d *state) {
		for _, e := range d.expenses {
			e := e
			out = append(out, &e)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CashClosingRepo implementa repository.CashClosingRepository.
type CashClosingRepo struct{ a access }

var _ repository.CashClosingRepository = (*CashClosingRepo)(nil)

func (r *CashClosingRepo) Create(_ context.Context, c *entity.CashClosing) error {
	r.a.do(func(d *state) {
		d.closings[c.ID] = *c
	})
	return nil
}

func (r *CashClosingRepo) GetByID(_ context.Context, id string) (*entity.CashClosing, error) {
	var out *entity.CashClosing
	r.a.do(func(d *state) {
		if c, ok := d.closings[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CashClosingRepo) List(_ context.Context, userID string) ([]*entity.CashClosing, error) {
	var out []*entity.CashClosing
	r.a.do(func(d *state) {
		for _, c := range d.closings {
			if userID != "" && c.UserID != userID {
				continue
			}
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
