package memory

import (
	"context"
	"sort"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

// TableRepo implementa repository.TableRepository.
type TableRepo struct{ a access }

var _ repository.TableRepository = (*TableRepo)(nil)

func (r *TableRepo) Create(_ context.Context, t *entity.Table) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.tables[t.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		d.tables[t.ID] = *t
	})
	return err
}

func (r *TableRepo) GetByID(_ context.Context, id string) (*entity.Table, error) {
	var out *entity.Table
	r.a.do(func(d *state) {
		if t, ok := d.tables[id]; ok {
			out = &t
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: el lock del store ya serializa la transacción.
func (r *TableRepo) GetForUpdate(ctx context.Context, id string) (*entity.Table, error) {
	return r.GetByID(ctx, id)
}

func (r *TableRepo) List(_ context.Context) ([]*entity.Table, error) {
	var out []*entity.Table
	r.a.do(func(d *state) {
		for _, t := range d.tables {
			t := t
			out = append(out, &t)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TableRepo) Update(_ context.Context, t *entity.Table) error {
	var err error
	r.a.do(func(d *state) {
		cur, ok := d.tables[t.ID]
		if !ok {
			err = domain.ErrTableNotFound
			return
		}
		cur.Name = t.Name
		cur.HourlyRate = t.HourlyRate
		cur.Image = t.Image
		cur.UpdatedAt = t.UpdatedAt
		d.tables[t.ID] = cur
	})
	return err
}

func (r *TableRepo) SetStatus(_ context.Context, id, status string) error {
	var err error
	r.a.do(func(d *state) {
		cur, ok := d.tables[id]
		if !ok {
			err = domain.ErrTableNotFound
			return
		}
		cur.Status = status
		d.tables[id] = cur
	})
	return err
}

// Delete rechaza la baja si algún turno, aunque esté cerrado, referencia la mesa.
func (r *TableRepo) Delete(_ context.Context, id string) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.tables[id]; !ok {
			err = domain.ErrTableNotFound
			return
		}
		for _, s := range d.sessions {
			if s.TableID == id {
				err = domain.ErrTableHasHistory
				return
			}
		}
		delete(d.tables, id)
	})
	return err
}
