package caja_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billartiochichi/billar-api/internal/application/caja"
	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/infrastructure/memory"
	"github.com/billartiochichi/billar-api/pkg/clock"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeReceipts struct {
	username string
}

func (f *fakeReceipts) RenderClosing(_ *entity.CashClosing, username string) ([]byte, error) {
	f.username = username
	return []byte("%PDF-fake"), nil
}

func closedSession(id, user string, end time.Time, timeSub, products, discount, extras string) *entity.Session {
	e := end
	tt, pp, dd, xx := dec(timeSub), dec(products), dec(discount), dec(extras)
	return &entity.Session{
		ID:               id,
		TableID:          "m-" + id,
		HourlyRate:       dec("20"),
		StartedAt:        end.Add(-time.Hour),
		EndedAt:          &e,
		TimeSubtotal:     tt,
		ProductsSubtotal: pp,
		Discount:         dd,
		ExtraServices:    xx,
		Total:            tt.Add(pp).Add(xx).Sub(dd),
		Status:           entity.SessionClosed,
		AttendedBy:       user,
		ClosedBy:         user,
	}
}

func setup(t *testing.T) (*caja.UseCase, *memory.Store, *fakeReceipts) {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	clk := clock.NewFixed(time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC))
	r := &fakeReceipts{}
	uc := caja.NewUseCase(st, st.CashClosings(), st.Users(), r, clk, logger.Nop())

	require.NoError(t, st.Users().Create(ctx, &entity.User{ID: "u1", Username: "ana", Role: entity.RoleEmpleado}))
	day := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	for _, s := range []*entity.Session{
		closedSession("a", "u1", day.Add(10*time.Hour), "40", "15", "5", "0"),
		closedSession("b", "u1", day.Add(23*time.Hour+59*time.Minute), "20", "0", "0", "3"),
		closedSession("c", "u2", day.Add(12*time.Hour), "60", "0", "0", "0"),
		closedSession("d", "u1", day.Add(30*time.Hour), "80", "0", "0", "0"),
	} {
		require.NoError(t, st.Sessions().Create(ctx, s))
	}
	return uc, st, r
}

// ─── Cierre ─────────────────────────────────────────────────────────────────

func TestCloseRegister_SumaTurnosDelUsuarioEnElDia(t *testing.T) {
	uc, _, _ := setup(t)
	note := "  sin novedades "
	out, err := uc.CloseRegister(context.Background(), "u1", dto.CloseRegisterRequest{
		DateStart: "20/11/2025",
		DateEnd:   "2025-11-20",
		Withdrawn: dec("50"),
		Change:    dec("10"),
		Note:      &note,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.SessionCount)
	assert.True(t, out.TotalTime.Equal(dec("60")))
	assert.True(t, out.TotalProducts.Equal(dec("15")))
	assert.True(t, out.TotalDiscounts.Equal(dec("5")))
	assert.True(t, out.TotalExtraServices.Equal(dec("3")))
	assert.True(t, out.TotalGeneral.Equal(dec("73")))
	assert.True(t, out.Withdrawn.Equal(dec("50")))
	require.NotNil(t, out.Note)
	assert.Equal(t, "sin novedades", *out.Note)
	assert.Equal(t, time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC), out.RangeStart)
	assert.Equal(t, time.Date(2025, 11, 20, 23, 59, 59, 999999000, time.UTC), out.RangeEnd)
}

func TestCloseRegister_SinTurnos(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.CloseRegister(context.Background(), "u1", dto.CloseRegisterRequest{
		DateStart: "2025-01-01", DateEnd: "2025-01-02",
	})
	assert.ErrorIs(t, err, domain.ErrNoMatchingSessions)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCloseRegister_FechaInvalida(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.CloseRegister(context.Background(), "u1", dto.CloseRegisterRequest{
		DateStart: "20-11-2025", DateEnd: "2025-11-20",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestCloseRegister_RangosSolapadosCuentanDosVeces(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	in := dto.CloseRegisterRequest{DateStart: "2025-11-20", DateEnd: "2025-11-20"}
	first, err := uc.CloseRegister(ctx, "u1", in)
	require.NoError(t, err)
	second, err := uc.CloseRegister(ctx, "u1", in)
	require.NoError(t, err)
	assert.True(t, first.TotalGeneral.Equal(second.TotalGeneral))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCloseRegister_IncluyeTurnoCerradoEnElUltimoSegundo(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	clk := clock.NewFixed(time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC))
	uc := caja.NewUseCase(st, st.CashClosings(), st.Users(), nil, clk, logger.Nop())

	end := time.Date(2025, 11, 20, 23, 59, 59, 500000000, time.UTC)
	require.NoError(t, st.Sessions().Create(ctx, closedSession("z", "u1", end, "20", "0", "0", "0")))

	out, err := uc.CloseRegister(ctx, "u1", dto.CloseRegisterRequest{DateStart: "2025-11-20", DateEnd: "2025-11-20"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.SessionCount)
	assert.True(t, out.TotalGeneral.Equal(dec("20")))

	_, err = uc.CloseRegister(ctx, "u1", dto.CloseRegisterRequest{DateStart: "2025-11-21", DateEnd: "2025-11-21"})
	assert.ErrorIs(t, err, domain.ErrNoMatchingSessions)
}

// ─── Consulta ───────────────────────────────────────────────────────────────

func TestList_EmpleadoVeSoloLosPropios(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	_, err := uc.CloseRegister(ctx, "u1", dto.CloseRegisterRequest{DateStart: "2025-11-20", DateEnd: "2025-11-21"})
	require.NoError(t, err)
	_, err = uc.CloseRegister(ctx, "u2", dto.CloseRegisterRequest{DateStart: "2025-11-20", DateEnd: "2025-11-20"})
	require.NoError(t, err)

	own, err := uc.List(ctx, "u1", entity.RoleEmpleado)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, 3, own[0].SessionCount)

	all, err := uc.List(ctx, "admin", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGet_AjenoNoEncontrado(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	c, err := uc.CloseRegister(ctx, "u2", dto.CloseRegisterRequest{DateStart: "2025-11-20", DateEnd: "2025-11-20"})
	require.NoError(t, err)

	_, err = uc.Get(ctx, c.ID, "u1", entity.RoleEmpleado)
	assert.ErrorIs(t, err, domain.ErrClosingNotFound)

	got, err := uc.Get(ctx, c.ID, "x", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestReceipt_UsaNombreDeUsuario(t *testing.T) {
	uc, _, r := setup(t)
	ctx := context.Background()
	c, err := uc.CloseRegister(ctx, "u1", dto.CloseRegisterRequest{DateStart: "2025-11-20", DateEnd: "2025-11-20"})
	require.NoError(t, err)

	pdf, err := uc.Receipt(ctx, c.ID, "u1", entity.RoleEmpleado)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "ana", r.username)
}
