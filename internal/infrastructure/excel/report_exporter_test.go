package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/infrastructure/excel"
)

func TestExportSessions_FilasYTotales(t *testing.T) {
	cajero := "cajero1"
	r := &dto.ReportResponse{
		DateStart: "2025-03-10",
		DateEnd:   "2025-03-11",
		Sessions: []dto.ReportSession{{
			Table:            "Mesa 1",
			AttendedBy:       &cajero,
			StartedAt:        time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
			EndedAt:          time.Date(2025, 3, 10, 19, 35, 0, 0, time.UTC),
			TotalMinutes:     95,
			EffectiveMinutes: 95,
			TimeSubtotal:     decimal.NewFromInt(40),
			ProductsSubtotal: decimal.NewFromInt(10),
			Total:            decimal.NewFromInt(50),
			Consumptions:     []dto.ReportConsumption{{ProductName: "Cerveza", Quantity: 2, Subtotal: decimal.NewFromInt(10)}},
		}},
		TotalTime:     decimal.NewFromInt(40),
		TotalProducts: decimal.NewFromInt(10),
		TotalGeneral:  decimal.NewFromInt(50),
	}

	out, err := excel.NewReportExporter().ExportSessions(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Turnos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Reporte de turnos: 10 Marzo 2025 - 11 Marzo 2025", title)

	rows, err := f.GetRows("Turnos")
	require.NoError(t, err)
	require.Len(t, rows, 5) // título, vacía, cabecera, un turno, totales
	assert.Equal(t, "Mesa 1", rows[3][0])
	assert.Equal(t, "cajero1", rows[3][1])
	assert.Equal(t, "2 x Cerveza (10,00)", rows[3][7])
	assert.Equal(t, "TOTALES", rows[4][0])
	assert.Equal(t, "50", rows[4][12])
}
