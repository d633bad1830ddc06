package memory

import (
	"context"
	"sort"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ a access }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.products[p.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		d.products[p.ID] = *p
	})
	return err
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.a.do(func(d *state) {
		if p, ok := d.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	var err error
	r.a.do(func(d *state) {
		cur, ok := d.products[p.ID]
		if !ok {
			err = domain.ErrProductNotFound
			return
		}
		stock := cur.Stock
		cur = *p
		cur.Stock = stock
		d.products[p.ID] = cur
	})
	return err
}

func (r *ProductRepo) AdjustStock(_ context.Context, id string, delta int) (int, error) {
	var (
		stock int
		err   error
	)
	r.a.do(func(d *state) {
		cur, ok := d.products[id]
		if !ok {
			err = domain.ErrProductNotFound
			return
		}
		if cur.Stock+delta < 0 {
			err = domain.ErrInsufficientStock
			return
		}
		cur.Stock += delta
		d.products[id] = cur
		stock = cur.Stock
	})
	return stock, err
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.a.do(func(d *state) {
		for _, p := range d.products {
			p := p
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.products[id]; !ok {
			err = domain.ErrProductNotFound
			return
		}
		delete(d.products, id)
	})
	return err
}

// StockMovementRepo implementa repository.StockMovementRepository.
type StockMovementRepo struct{ a access }

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.a.do(func(d *state) {
		d.movements = append(d.movements, *m)
	})
	return nil
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	r.a.do(func(d *state) {
		// recorrido inverso: los más recientes primero
		for i := len(d.movements) - 1; i >= 0; i-- {
			if d.movements[i].ProductID == productID {
				m := d.movements[i]
				all = append(all, &m)
			}
		}
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
