package turno_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billartiochichi/billar-api/internal/application/inventory"
	"github.com/billartiochichi/billar-api/internal/application/turno"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	"github.com/billartiochichi/billar-api/internal/infrastructure/memory"
	"github.com/billartiochichi/billar-api/pkg/clock"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// ─── Helpers ────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	clk   *clock.Fixed
	uc    *turno.UseCase
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) *fixture {
	return newFixtureWithRunner(t, nil)
}

func newFixtureWithRunner(t *testing.T, wrap func(repository.TxRunner) repository.TxRunner) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	clk := clock.NewFixed(time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))

	var runner repository.TxRunner = st
	if wrap != nil {
		runner = wrap(st)
	}
	ledger := inventory.NewStockLedgerUseCase(st, st.Movements(), clk)
	uc := turno.NewUseCase(runner, st.Sessions(), st.Consumptions(), ledger, clk, logger.Nop())

	for _, id := range []string{"m1", "m2"} {
		require.NoError(t, st.Tables().Create(ctx, &entity.Table{
			ID: id, Name: "Mesa " + id, HourlyRate: dec("20"), Status: entity.TableStatusFree,
		}))
	}
	require.NoError(t, st.Products().Create(ctx, &entity.Product{
		ID: "p1", Name: "Cerveza", PurchasePrice: dec("3"), SalePrice: dec("5"), Stock: 10,
	}))
	return &fixture{store: st, clk: clk, uc: uc}
}

func (f *fixture) table(t *testing.T, id string) *entity.Table {
	t.Helper()
	tb, err := f.store.Tables().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, tb)
	return tb
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// commitFailRunner corre fn en el store y devuelve un error como si el commit fallara.
type commitFailRunner struct{ inner repository.TxRunner }

func (r commitFailRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	return r.inner.Run(ctx, func(tx repository.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		return errors.New("commit: conexión cerrada")
	})
}

// ─── Inicio ─────────────────────────────────────────────────────────────────

func TestStart_OcupaMesaYCopiaTarifa(t *testing.T) {
	f := newFixture(t)
	s, err := f.uc.Start(context.Background(), "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	assert.Equal(t, entity.SessionOpen, s.Status)
	assert.True(t, s.HourlyRate.Equal(dec("20")))
	assert.Equal(t, "u1", s.AttendedBy)
	assert.Empty(t, s.Consumptions)
	assert.Equal(t, entity.TableStatusOccupied, f.table(t, "m1").Status)
}

func TestStart_TarifaExplicita(t *testing.T) {
	f := newFixture(t)
	s, err := f.uc.Start(context.Background(), "m1", dec("30"), "u1")
	require.NoError(t, err)
	assert.True(t, s.HourlyRate.Equal(dec("30")))
}

func TestStart_MesaOcupadaNoCreaSegundoTurno(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	_, err = f.uc.Start(ctx, "m1", decimal.Zero, "u2")
	assert.ErrorIs(t, err, domain.ErrTableOccupied)
	assert.ErrorIs(t, err, domain.ErrConflict)

	active, err := f.uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestStart_ConcurrenteSoloUnoGana(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 50
	var ok, conflict, other atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrTableOccupied):
				conflict.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), conflict.Load())
	assert.Zero(t, other.Load())

	active, err := f.uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, entity.TableStatusOccupied, f.table(t, "m1").Status)
}

func TestStart_MesaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Start(context.Background(), "nope", decimal.Zero, "u1")
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

// ─── Consumos ───────────────────────────────────────────────────────────────

func TestAddConsumption_DescuentaStockYSumaSubtotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	out, err := f.uc.AddConsumption(ctx, s.ID, "p1", 3, "u1")
	require.NoError(t, err)

	assert.True(t, out.ProductsSubtotal.Equal(dec("15")))
	require.Len(t, out.Consumptions, 1)
	assert.Equal(t, "Cerveza", out.Consumptions[0].ProductName)
	assert.True(t, out.Consumptions[0].Subtotal.Equal(dec("15")))
	assert.Equal(t, 7, f.stock(t, "p1"))

	movs, err := f.store.Movements().ListByProduct(ctx, "p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, -3, movs[0].Quantity)
	assert.Equal(t, out.Consumptions[0].ID, movs[0].Reference)
}

func TestAddConsumption_StockInsuficienteNoMuta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	_, err = f.uc.AddConsumption(ctx, s.ID, "p1", 11, "u1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.stock(t, "p1"))
	got, err := f.uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Consumptions)
	assert.True(t, got.ProductsSubtotal.IsZero())
}

func TestAddConsumption_ConcurrenteNoSobrevende(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	const n = 30
	var ok, insufficient, other atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.AddConsumption(ctx, sess.ID, "p1", 1, "u1")
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), ok.Load())
	assert.Equal(t, int32(n-10), insufficient.Load())
	assert.Zero(t, other.Load())
	assert.Equal(t, 0, f.stock(t, "p1"))

	got, err := f.uc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Consumptions, 10)
	assert.True(t, got.ProductsSubtotal.Equal(dec("50")), got.ProductsSubtotal.String())

	movs, err := f.store.Movements().ListByProduct(ctx, "p1", 100, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 10)
}

func TestAddConsumption_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	_, err = f.uc.AddConsumption(ctx, s.ID, "nope", 1, "u1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddConsumption_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.AddConsumption(context.Background(), "x", "p1", 0, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddConsumption_TurnoCerrado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)
	_, err = f.uc.Close(ctx, s.ID, decimal.Zero, decimal.Zero, "u1")
	require.NoError(t, err)

	_, err = f.uc.AddConsumption(ctx, s.ID, "p1", 1, "u1")
	assert.ErrorIs(t, err, domain.ErrSessionNotActive)
	assert.Equal(t, 10, f.stock(t, "p1"))
}

func TestRemoveConsumption_DevuelveStockSinTocarSubtotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)
	out, err := f.uc.AddConsumption(ctx, s.ID, "p1", 2, "u1")
	require.NoError(t, err)

	require.NoError(t, f.uc.RemoveConsumption(ctx, out.Consumptions[0].ID, "u1"))

	assert.Equal(t, 10, f.stock(t, "p1"))
	got, err := f.uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Consumptions)
	// el subtotal de productos conserva lo ya cobrado
	assert.True(t, got.ProductsSubtotal.Equal(dec("10")))
}

func TestRemoveConsumption_Inexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.RemoveConsumption(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, domain.ErrConsumptionNotFound)
}

// ─── Pausa, vista previa y cierre ───────────────────────────────────────────

func TestPauseResumeClose_DescuentaPausa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	f.clk.Advance(10 * time.Minute)
	p, err := f.uc.Pause(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionPaused, p.Status)
	require.NotNil(t, p.PauseStartedAt)

	f.clk.Advance(5 * time.Minute)
	again, err := f.uc.Pause(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, *p.PauseStartedAt, *again.PauseStartedAt)

	f.clk.Advance(15 * time.Minute)
	r, err := f.uc.Resume(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionOpen, r.Status)
	assert.Nil(t, r.PauseStartedAt)
	assert.Equal(t, int64(20*60), r.PausedSeconds)

	f.clk.Advance(35 * time.Minute)
	closed, err := f.uc.Close(ctx, s.ID, decimal.Zero, decimal.Zero, "u2")
	require.NoError(t, err)

	// 65 minutos de reloj menos 20 de pausa = 45 efectivos → tarifa completa
	assert.InDelta(t, 45.0, closed.EffectiveMinutes, 0.001)
	assert.True(t, closed.TimeSubtotal.Equal(dec("20")))
	assert.True(t, closed.Total.Equal(dec("20")))
	assert.Equal(t, "u2", closed.ClosedBy)
}

func TestClose_TotalesYLiberaMesa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)
	_, err = f.uc.AddConsumption(ctx, s.ID, "p1", 2, "u1")
	require.NoError(t, err)

	f.clk.Advance(95 * time.Minute)
	closed, err := f.uc.Close(ctx, s.ID, dec("5"), dec("3"), "u1")
	require.NoError(t, err)

	assert.Equal(t, entity.SessionClosed, closed.Status)
	require.NotNil(t, closed.EndedAt)
	assert.True(t, closed.TimeSubtotal.Equal(dec("40")))
	want := closed.TimeSubtotal.Add(closed.ProductsSubtotal).Add(closed.ExtraServices).Sub(closed.Discount)
	assert.True(t, closed.Total.Equal(want))
	assert.True(t, closed.Total.Equal(dec("48")))
	assert.Equal(t, entity.TableStatusFree, f.table(t, "m1").Status)

	_, err = f.uc.Close(ctx, s.ID, decimal.Zero, decimal.Zero, "u1")
	assert.ErrorIs(t, err, domain.ErrSessionNotActive)
}

func TestClose_DescuentoNegativoNoCierra(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	_, err = f.uc.Close(ctx, s.ID, dec("-1"), decimal.Zero, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.TableStatusOccupied, f.table(t, "m1").Status)
}

func TestPreview_PersisteSubtotalDeTurnoActivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	f.clk.Advance(95 * time.Minute)
	p, err := f.uc.Preview(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, p.TimeSubtotal.Equal(dec("40")))
	assert.True(t, p.Total.Equal(dec("40")))

	stored, err := f.store.Sessions().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, stored.TimeSubtotal.Equal(dec("40")))
	assert.Equal(t, entity.SessionOpen, stored.Status)
}

func TestPreview_TurnoCerradoNoCambia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)
	f.clk.Advance(20 * time.Minute)
	closed, err := f.uc.Close(ctx, s.ID, decimal.Zero, decimal.Zero, "u1")
	require.NoError(t, err)

	f.clk.Advance(3 * time.Hour)
	p, err := f.uc.Preview(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, p.Total.Equal(closed.Total))
	assert.InDelta(t, closed.EffectiveMinutes, p.EffectiveMinutes, 0.001)
}

func TestPreview_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Preview(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// ─── Transferencia ──────────────────────────────────────────────────────────

func TestTransfer_MueveTurnoYActualizaMesas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)

	out, err := f.uc.Transfer(ctx, "m1", "m2")
	require.NoError(t, err)
	assert.Equal(t, s.ID, out.SessionID)

	assert.Equal(t, entity.TableStatusFree, f.table(t, "m1").Status)
	assert.Equal(t, entity.TableStatusOccupied, f.table(t, "m2").Status)
	got, err := f.uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "m2", got.TableID)
}

func TestTransfer_MismaMesa(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Transfer(context.Background(), "m1", "m1")
	assert.ErrorIs(t, err, domain.ErrSameTable)
}

func TestTransfer_SinTurnoActivo(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Transfer(context.Background(), "m1", "m2")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestTransfer_DestinoInexistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)
	_, err = f.uc.Transfer(ctx, "m1", "nope")
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestTransfer_DestinoOcupadoNoMuta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s1, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)
	_, err = f.uc.Start(ctx, "m2", decimal.Zero, "u1")
	require.NoError(t, err)

	_, err = f.uc.Transfer(ctx, "m1", "m2")
	assert.ErrorIs(t, err, domain.ErrDestinationOccupied)

	got, err := f.uc.Get(ctx, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, "m1", got.TableID)
	assert.Equal(t, entity.TableStatusOccupied, f.table(t, "m1").Status)
}

func TestTransfer_DestinoLibreConTurnoActivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s1, err := f.uc.Start(ctx, "m1", decimal.Zero, "u1")
	require.NoError(t, err)
	// turno abierto en m2 con la mesa marcada libre
	require.NoError(t, f.store.Sessions().Create(ctx, &entity.Session{
		ID: "s2", TableID: "m2", HourlyRate: dec("20"), StartedAt: f.clk.Now(), Status: entity.SessionOpen,
	}))
	require.Equal(t, entity.TableStatusFree, f.table(t, "m2").Status)

	_, err = f.uc.Transfer(ctx, "m1", "m2")
	assert.ErrorIs(t, err, domain.ErrDestinationHasSession)

	got, err := f.uc.Get(ctx, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, "m1", got.TableID)
	assert.Equal(t, entity.TableStatusOccupied, f.table(t, "m1").Status)
	assert.Equal(t, entity.TableStatusFree, f.table(t, "m2").Status)
}

func TestTransfer_FalloAlConfirmarEsGenerico(t *testing.T) {
	f := newFixtureWithRunner(t, func(inner repository.TxRunner) repository.TxRunner {
		return commitFailRunner{inner: inner}
	})
	ctx := context.Background()
	// el inicio también falla con este runner, así que se siembra el turno directo en el store
	require.NoError(t, f.store.Sessions().Create(ctx, &entity.Session{
		ID: "s1", TableID: "m1", HourlyRate: dec("20"), StartedAt: f.clk.Now(), Status: entity.SessionOpen,
	}))
	require.NoError(t, f.store.Tables().SetStatus(ctx, "m1", entity.TableStatusOccupied))

	_, err := f.uc.Transfer(ctx, "m1", "m2")
	assert.ErrorIs(t, err, domain.ErrTransferFailed)

	assert.Equal(t, entity.TableStatusOccupied, f.table(t, "m1").Status)
	assert.Equal(t, entity.TableStatusFree, f.table(t, "m2").Status)
	s, err := f.store.Sessions().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "m1", s.TableID)
}
