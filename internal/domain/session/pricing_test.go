package session_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/session"
)

var (
	rate20 = decimal.NewFromInt(20)
	t0     = time.Date(2025, 11, 20, 18, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newSession() *entity.Session {
	return session.New("t-1", "m-1", rate20, "u-1", t0)
}

// ── Tarifa escalonada ────────────────────────────────────────────────────────

func TestTimePrice_Tabla(t *testing.T) {
	cases := []struct {
		name    string
		minutes float64
		want    string
	}{
		{"cero minutos cobra media hora", 0, "10"},
		{"25 minutos", 25, "10"},
		{"30 exactos sigue en media hora", 30, "10"},
		{"30.9999 pasa la frontera pero el resto es < 31", 30.9999, "10"},
		{"31 minutos cobra hora completa", 31, "20"},
		{"59 minutos", 59, "20"},
		{"60 minutos: una hora más media", 60, "30"},
		{"90 minutos: resto 30", 90, "30"},
		{"91 minutos: resto 31", 91, "40"},
		{"95 minutos", 95, "40"},
		{"150 minutos", 150, "50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := session.TimePrice(tc.minutes, rate20)
			assert.True(t, got.Equal(dec(tc.want)), "minutos=%v: esperado %s, obtenido %s", tc.minutes, tc.want, got)
		})
	}
}

func TestTimePrice_TarifaImpar(t *testing.T) {
	got := session.TimePrice(10, dec("15"))
	assert.True(t, got.Equal(dec("7.5")), "media tarifa de 15 debe ser 7.5, obtenido %s", got)
}

// ── Contabilidad de tiempo ───────────────────────────────────────────────────

func TestEffectiveMinutes_SinPausas(t *testing.T) {
	s := newSession()
	assert.InDelta(t, 95.0, session.EffectiveMinutes(s, t0.Add(95*time.Minute), nil), 1e-9)
}

func TestEffectiveMinutes_NuncaNegativo(t *testing.T) {
	s := newSession()
	s.PausedSeconds = 3600
	assert.Equal(t, 0.0, session.EffectiveMinutes(s, t0.Add(10*time.Minute), nil))
	assert.Equal(t, 0.0, session.EffectiveMinutes(s, t0.Add(-5*time.Minute), nil))
}

func TestEffectiveMinutes_StartOverride(t *testing.T) {
	s := newSession()
	start := t0.Add(30 * time.Minute)
	assert.InDelta(t, 30.0, session.EffectiveMinutes(s, t0.Add(time.Hour), &start), 1e-9)
}

func TestPauseSeconds_IncluyePausaEnCurso(t *testing.T) {
	s := newSession()
	s.PausedSeconds = 120
	ps := t0.Add(10 * time.Minute)
	s.PauseStartedAt = &ps

	assert.Equal(t, int64(120+300), session.PauseSeconds(s, ps.Add(5*time.Minute)))
	// una pausa con inicio en el futuro no resta tiempo
	assert.Equal(t, int64(120), session.PauseSeconds(s, ps.Add(-time.Minute)))
}

func TestEffectiveMinutes_MonotonoMientrasAbierto(t *testing.T) {
	s := newSession()
	prev := -1.0
	for i := 0; i < 200; i += 7 {
		m := session.EffectiveMinutes(s, t0.Add(time.Duration(i)*time.Minute), nil)
		assert.GreaterOrEqual(t, m, prev)
		prev = m
	}
}

// ── Máquina de estados ───────────────────────────────────────────────────────

func TestPauseResume_RoundTripInmediato(t *testing.T) {
	s := newSession()
	at := t0.Add(40 * time.Minute)

	changed, err := session.Pause(s, at)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, entity.SessionPaused, s.Status)
	require.NotNil(t, s.PauseStartedAt)

	require.NoError(t, session.Resume(s, at))
	assert.Equal(t, entity.SessionOpen, s.Status)
	assert.Nil(t, s.PauseStartedAt)
	assert.Equal(t, int64(0), s.PausedSeconds)

	end := t0.Add(95 * time.Minute)
	assert.InDelta(t, 95.0, session.EffectiveMinutes(s, end, nil), 1e-9)
}

func TestPause_DescuentaTiempoPausado(t *testing.T) {
	s := newSession()
	_, err := session.Pause(s, t0.Add(20*time.Minute))
	require.NoError(t, err)

	// durante la pausa los minutos efectivos no avanzan
	during1 := session.EffectiveMinutes(s, t0.Add(25*time.Minute), nil)
	during2 := session.EffectiveMinutes(s, t0.Add(50*time.Minute), nil)
	assert.InDelta(t, 20.0, during1, 1e-9)
	assert.InDelta(t, 20.0, during2, 1e-9)

	require.NoError(t, session.Resume(s, t0.Add(50*time.Minute)))
	assert.Equal(t, int64(30*60), s.PausedSeconds)
	assert.InDelta(t, 30.0, session.EffectiveMinutes(s, t0.Add(60*time.Minute), nil), 1e-9)
}

func TestPause_Idempotente(t *testing.T) {
	s := newSession()
	first := t0.Add(10 * time.Minute)
	_, err := session.Pause(s, first)
	require.NoError(t, err)

	changed, err := session.Pause(s, t0.Add(20*time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, *s.PauseStartedAt, "la segunda pausa no debe mover el inicio de la pausa")
}

func TestPause_CorrigeEstadoDesincronizado(t *testing.T) {
	s := newSession()
	ps := t0.Add(10 * time.Minute)
	s.PauseStartedAt = &ps // estado abierto con pausa activa

	changed, err := session.Pause(s, t0.Add(20*time.Minute))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, entity.SessionPaused, s.Status)
	assert.Equal(t, ps, *s.PauseStartedAt)
}

func TestResume_SinPausaSoloReabre(t *testing.T) {
	s := newSession()
	s.Status = entity.SessionPaused // desincronizado: sin pausa_inicio

	require.NoError(t, session.Resume(s, t0.Add(time.Minute)))
	assert.Equal(t, entity.SessionOpen, s.Status)
	assert.Equal(t, int64(0), s.PausedSeconds)
}

func TestClose_CalculaTotales(t *testing.T) {
	s := newSession()
	s.ProductsSubtotal = dec("12.5")

	end := t0.Add(95 * time.Minute)
	require.NoError(t, session.Close(s, end, dec("5"), dec("3"), "u-2"))

	assert.Equal(t, entity.SessionClosed, s.Status)
	require.NotNil(t, s.EndedAt)
	assert.Equal(t, end, *s.EndedAt)
	assert.Equal(t, "u-2", s.ClosedBy)
	assert.True(t, s.TimeSubtotal.Equal(dec("40")), "subtotal tiempo: %s", s.TimeSubtotal)
	assert.True(t, s.Total.Equal(dec("50.5")), "total: %s", s.Total)
	assert.True(t, s.Total.Equal(session.Total(s)))
}

func TestClose_ConPausaActivaLaConsolida(t *testing.T) {
	s := newSession()
	_, err := session.Pause(s, t0.Add(25*time.Minute))
	require.NoError(t, err)

	end := t0.Add(85 * time.Minute) // 25 jugados + 60 en pausa
	require.NoError(t, session.Close(s, end, decimal.Zero, decimal.Zero, "u-1"))

	assert.Nil(t, s.PauseStartedAt)
	assert.Equal(t, int64(3600), s.PausedSeconds)
	assert.True(t, s.TimeSubtotal.Equal(dec("10")), "25 minutos efectivos = media hora")
	// congelado tras el cierre
	assert.InDelta(t, 25.0, session.EffectiveMinutes(s, session.AsOf(s, end.Add(5*time.Hour)), nil), 1e-9)
}

func TestTransiciones_TurnoCerradoRechaza(t *testing.T) {
	s := newSession()
	require.NoError(t, session.Close(s, t0.Add(time.Hour), decimal.Zero, decimal.Zero, "u-1"))

	_, err := session.Pause(s, t0.Add(2*time.Hour))
	assert.ErrorIs(t, err, domain.ErrSessionNotActive)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, session.Resume(s, t0.Add(2*time.Hour)), domain.ErrSessionNotActive)
	assert.ErrorIs(t, session.Close(s, t0.Add(2*time.Hour), decimal.Zero, decimal.Zero, "u-1"), domain.ErrSessionNotActive)
}

func TestClose_MontosNegativosInvalidos(t *testing.T) {
	s := newSession()
	err := session.Close(s, t0.Add(time.Hour), dec("-1"), decimal.Zero, "u-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.SessionOpen, s.Status)
}
