package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billartiochichi/billar-api/internal/application/analytics"
	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeExporter struct{ got *dto.ReportResponse }

func (f *fakeExporter) ExportSessions(r *dto.ReportResponse) ([]byte, error) {
	f.got = r
	return []byte("xlsx"), nil
}

func seed(t *testing.T) (*analytics.ReportUseCase, *fakeExporter) {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	exp := &fakeExporter{}

	require.NoError(t, st.Tables().Create(ctx, &entity.Table{ID: "m1", Name: "Mesa 1", Status: entity.TableStatusFree}))
	require.NoError(t, st.Tables().Create(ctx, &entity.Table{ID: "m2", Name: "Mesa 2", Status: entity.TableStatusFree}))
	require.NoError(t, st.Users().Create(ctx, &entity.User{ID: "u1", Username: "ana"}))
	require.NoError(t, st.Users().Create(ctx, &entity.User{ID: "u2", Username: "beto"}))
	require.NoError(t, st.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Cerveza", SalePrice: dec("5"), Stock: 5}))

	day := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	mk := func(id, table string, start time.Time, minutes int, total string) *entity.Session {
		end := start.Add(time.Duration(minutes) * time.Minute)
		return &entity.Session{
			ID: id, TableID: table, HourlyRate: dec("20"),
			StartedAt: start, EndedAt: &end, PausedSeconds: 300,
			TimeSubtotal: dec(total), Total: dec(total),
			Status: entity.SessionClosed, AttendedBy: "u1", ClosedBy: "u2",
		}
	}
	for _, s := range []*entity.Session{
		mk("a", "m1", day.Add(18*time.Hour), 95, "40"),
		mk("b", "m2", day.Add(20*time.Hour), 30, "10"),
		// empezó el día anterior: fuera del reporte
		mk("c", "m1", day.Add(-time.Hour), 120, "40"),
	} {
		require.NoError(t, st.Sessions().Create(ctx, s))
	}
	require.NoError(t, st.Consumptions().Create(ctx, &entity.Consumption{
		ID: "c1", SessionID: "a", ProductID: "p1", Quantity: 2, Subtotal: dec("10"),
	}))

	uc := analytics.NewReportUseCase(st.Sessions(), st.Tables(), st.Users(), st.Consumptions(), exp)
	return uc, exp
}

func TestSessions_FiltraPorRangoYArmaTotales(t *testing.T) {
	uc, _ := seed(t)
	r, err := uc.Sessions(context.Background(), dto.ReportRequest{DateStart: "2025-11-20", DateEnd: "20/11/2025"})
	require.NoError(t, err)

	require.Len(t, r.Sessions, 2)
	first := r.Sessions[0]
	assert.Equal(t, "Mesa 1", first.Table)
	require.NotNil(t, first.AttendedBy)
	assert.Equal(t, "ana", *first.AttendedBy)
	require.NotNil(t, first.ClosedBy)
	assert.Equal(t, "beto", *first.ClosedBy)
	assert.Equal(t, 95, first.TotalMinutes)
	assert.Equal(t, 90, first.EffectiveMinutes)
	require.Len(t, first.Consumptions, 1)
	assert.Equal(t, "Cerveza", first.Consumptions[0].ProductName)

	assert.True(t, r.TotalTime.Equal(dec("50")))
	assert.True(t, r.TotalGeneral.Equal(dec("50")))
	assert.Nil(t, r.TableID)
}

func TestSessions_FiltroPorMesa(t *testing.T) {
	uc, _ := seed(t)
	r, err := uc.Sessions(context.Background(), dto.ReportRequest{DateStart: "2025-11-20", DateEnd: "2025-11-20", TableID: "m2"})
	require.NoError(t, err)
	require.Len(t, r.Sessions, 1)
	assert.Equal(t, "Mesa 2", r.Sessions[0].Table)
	require.NotNil(t, r.TableID)
	assert.Equal(t, "m2", *r.TableID)
}

func TestSessions_FechaInvalida(t *testing.T) {
	uc, _ := seed(t)
	_, err := uc.Sessions(context.Background(), dto.ReportRequest{DateStart: "ayer", DateEnd: "2025-11-20"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestExport_UsaElMismoReporte(t *testing.T) {
	uc, exp := seed(t)
	b, err := uc.Export(context.Background(), dto.ReportRequest{DateStart: "2025-11-20", DateEnd: "2025-11-20"})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), b)
	require.NotNil(t, exp.got)
	assert.Len(t, exp.got.Sessions, 2)
}

func TestRangeLabel(t *testing.T) {
	from := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "20 Noviembre 2025 - 21 Noviembre 2025", analytics.RangeLabel(from, from.AddDate(0, 0, 1)))
}
