package memory

import (
	"context"
	"sort"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

// SessionRepo implementa repository.SessionRepository.
type SessionRepo struct{ a access }

var _ repository.SessionRepository = (*SessionRepo)(nil)

func copySession(s entity.Session) entity.Session {
	if s.EndedAt != nil {
		t := *s.EndedAt
		s.EndedAt = &t
	}
	if s.PauseStartedAt != nil {
		t := *s.PauseStartedAt
		s.PauseStartedAt = &t
	}
	return s
}

func ref(s entity.Session) *entity.Session {
	c := copySession(s)
	return &c
}

// Create rechaza un segundo turno activo en la misma mesa, igual que el índice único parcial en postgres.
func (r *SessionRepo) Create(_ context.Context, s *entity.Session) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.sessions[s.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		if s.Active() {
			for _, other := range d.sessions {
				if other.TableID == s.TableID && other.Active() {
					err = domain.ErrTableOccupied
					return
				}
			}
		}
		d.sessions[s.ID] = copySession(*s)
	})
	return err
}

func (r *SessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	var out *entity.Session
	r.a.do(func(d *state) {
		if s, ok := d.sessions[id]; ok {
			out = ref(s)
		}
	})
	return out, nil
}

func (r *SessionRepo) GetActiveForUpdate(_ context.Context, id string) (*entity.Session, error) {
	var out *entity.Session
	r.a.do(func(d *state) {
		if s, ok := d.sessions[id]; ok && s.Active() {
			out = ref(s)
		}
	})
	return out, nil
}

func (r *SessionRepo) GetActiveByTable(_ context.Context, tableID string) (*entity.Session, error) {
	var out *entity.Session
	r.a.do(func(d *state) {
		for _, s := range d.sessions {
			if s.TableID == tableID && s.Active() {
				out = ref(s)
				return
			}
		}
	})
	return out, nil
}

func (r *SessionRepo) CountActiveByTable(_ context.Context, tableID string) (int, error) {
	n := 0
	r.a.do(func(d *state) {
		for _, s := range d.sessions {
			if s.TableID == tableID && s.Active() {
				n++
			}
		}
	})
	return n, nil
}

func (r *SessionRepo) ListActive(_ context.Context) ([]*entity.Session, error) {
	var out []*entity.Session
	r.a.do(func(d *state) {
		for _, s := range d.sessions {
			if s.Active() {
				out = append(out, ref(s))
			}
		}
	})
	sortByStart(out)
	return out, nil
}

func (r *SessionRepo) ListClosed(_ context.Context, f repository.SessionFilter) ([]*entity.Session, error) {
	var out []*entity.Session
	r.a.do(func(d *state) {
		for _, s := range d.sessions {
			if s.Status != entity.SessionClosed || s.EndedAt == nil {
				continue
			}
			if s.EndedAt.Before(f.EndFrom) || s.EndedAt.After(f.EndTo) {
				continue
			}
			if f.StartFrom != nil && s.StartedAt.Before(*f.StartFrom) {
				continue
			}
			if f.TableID != "" && s.TableID != f.TableID {
				continue
			}
			if f.AttendedBy != "" && s.AttendedBy != f.AttendedBy {
				continue
			}
			out = append(out, ref(s))
		}
	})
	sortByStart(out)
	return out, nil
}

func (r *SessionRepo) Update(_ context.Context, s *entity.Session) error {
	var err error
	r.a.do(func(d *state) {
		if _, ok := d.sessions[s.ID]; !ok {
			err = domain.ErrSessionNotFound
			return
		}
		d.sessions[s.ID] = copySession(*s)
	})
	return err
}

func sortByStart(list []*entity.Session) {
	sort.Slice(list, func(i, j int) bool { return list[i].StartedAt.Before(list[j].StartedAt) })
}
