package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billartiochichi/billar-api/pkg/dates"
)

func TestParse_FormatosAceptados(t *testing.T) {
	want := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

	iso, err := dates.Parse("2025-11-20")
	require.NoError(t, err)
	assert.Equal(t, want, iso)

	latam, err := dates.Parse("20/11/2025")
	require.NoError(t, err)
	assert.Equal(t, want, latam)
}

func TestParse_FormatoInvalido(t *testing.T) {
	_, err := dates.Parse("11-20-2025")
	assert.Error(t, err)

	_, err = dates.Parse("31/02/2025")
	assert.Error(t, err)
}

func TestRange_ExpandeDiasCompletos(t *testing.T) {
	start, end, err := dates.Range("2025-11-20", "21/11/2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 11, 21, 23, 59, 59, 999999000, time.UTC), end)
}

func TestRange_MismoDia(t *testing.T) {
	start, end, err := dates.Range("2025-11-20", "2025-11-20")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour-time.Microsecond, end.Sub(start))
}

func TestEndOfDay_CubreElUltimoSegundo(t *testing.T) {
	day := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	end := dates.EndOfDay(day)

	last := time.Date(2025, 11, 20, 23, 59, 59, 500000000, time.UTC)
	assert.False(t, last.After(end))
	assert.Equal(t, dates.StartOfDay(day.AddDate(0, 0, 1)), end.Add(time.Microsecond))
}

func TestRange_Invertido(t *testing.T) {
	_, _, err := dates.Range("2025-11-21", "2025-11-20")
	assert.Error(t, err)
}
