package memory

import (
	"context"
	"sort"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

// ConsumptionRepo implementa repository.ConsumptionRepository.
type ConsumptionRepo struct{ a access }

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

func (r *ConsumptionRepo) Create(_ context.Context, c *entity.Consumption) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.consumptions[c.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		d.consumptions[c.ID] = *c
	})
	return err
}

func (r *ConsumptionRepo) GetByID(_ context.Context, id string) (*entity.Consumption, error) {
	var out *entity.Consumption
	r.a.do(func(d *state) {
		if c, ok := d.consumptions[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *ConsumptionRepo) ListBySession(_ context.Context, sessionID string) ([]*entity.Consumption, error) {
	var out []*entity.Consumption
	r.a.do(func(d *state) {
		for _, c := range d.consumptions {
			if c.SessionID != sessionID {
				continue
			}
			c := c
			if p, ok := d.products[c.ProductID]; ok {
				c.ProductName = p.Name
			}
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ConsumptionRepo) Delete(_ context.Context, id string) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.consumptions[id]; !ok {
			err = domain.ErrConsumptionNotFound
			return
		}
		delete(d.consumptions, id)
	})
	return err
}
