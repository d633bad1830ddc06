package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	"github.com/billartiochichi/billar-api/internal/infrastructure/postgres"
)

// countingQuerier cuenta las sentencias que llegarían a la base; ninguna debe ejecutarse.
type countingQuerier struct {
	calls int
}

var errUnexpectedQuery = errors.New("consulta inesperada")

func (q *countingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.calls++
	return pgconn.CommandTag{}, errUnexpectedQuery
}

func (q *countingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.calls++
	return nil, errUnexpectedQuery
}

func (q *countingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.calls++
	return errRow{}
}

type errRow struct{}

func (errRow) Scan(...any) error { return errUnexpectedQuery }

const malformedID = "no-es-uuid"

// ─── IDs mal formados ─────────────────────────────────────────────────────────

func TestSessionRepo_IDMalFormadoNoConsulta(t *testing.T) {
	q := &countingQuerier{}
	repo := postgres.NewSessionRepository(q)
	ctx := context.Background()

	s, err := repo.GetActiveForUpdate(ctx, malformedID)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = repo.GetByID(ctx, malformedID)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = repo.GetActiveByTable(ctx, malformedID)
	require.NoError(t, err)
	assert.Nil(t, s)

	n, err := repo.CountActiveByTable(ctx, malformedID)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := repo.ListClosed(ctx, repository.SessionFilter{TableID: malformedID})
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.Zero(t, q.calls)
}

func TestTableRepo_IDMalFormadoEsNoEncontrado(t *testing.T) {
	q := &countingQuerier{}
	repo := postgres.NewTableRepository(q)
	ctx := context.Background()

	m, err := repo.GetForUpdate(ctx, malformedID)
	require.NoError(t, err)
	assert.Nil(t, m)

	assert.ErrorIs(t, repo.SetStatus(ctx, malformedID, entity.TableStatusOccupied), domain.ErrTableNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, malformedID), domain.ErrTableNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entity.Table{ID: malformedID}), domain.ErrTableNotFound)
	assert.Zero(t, q.calls)
}

func TestProductRepo_IDMalFormadoEsNoEncontrado(t *testing.T) {
	q := &countingQuerier{}
	repo := postgres.NewProductRepository(q)
	ctx := context.Background()

	p, err := repo.GetForUpdate(ctx, malformedID)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = repo.AdjustStock(ctx, malformedID, -1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, malformedID), domain.ErrProductNotFound)
	assert.Zero(t, q.calls)
}

func TestConsumptionRepo_IDMalFormadoEsNoEncontrado(t *testing.T) {
	q := &countingQuerier{}
	repo := postgres.NewConsumptionRepository(q)
	ctx := context.Background()

	c, err := repo.GetByID(ctx, malformedID)
	require.NoError(t, err)
	assert.Nil(t, c)

	list, err := repo.ListBySession(ctx, malformedID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, repo.Delete(ctx, malformedID), domain.ErrConsumptionNotFound)
	assert.Zero(t, q.calls)
}

// Un UUID válido sí llega a la base; el error de la consulta se propaga.
func TestTableRepo_IDValidoConsulta(t *testing.T) {
	q := &countingQuerier{}
	repo := postgres.NewTableRepository(q)

	_, err := repo.GetByID(context.Background(), "0b7e7dee-87bc-4a4b-9c9a-3b5a8c2f4d11")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnexpectedQuery)
	assert.Equal(t, 1, q.calls)
}
