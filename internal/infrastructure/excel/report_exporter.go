// Package excel exporta el reporte de turnos a una planilla xlsx.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/billartiochichi/billar-api/internal/application/analytics"
	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/pkg/dates"
	"github.com/billartiochichi/billar-api/pkg/money"
)

var _ analytics.ReportExporter = (*ReportExporter)(nil)

const sheet = "Turnos"

var headers = []string{
	"Mesa", "Atendido por", "Facturado por", "Hora inicio", "Hora fin",
	"Tiempo total (min)", "Tiempo efectivo (min)", "Consumos",
	"Subtotal tiempo", "Subtotal productos", "Servicios extras", "Descuento", "Total",
}

// ReportExporter implementa analytics.ReportExporter con excelize.
type ReportExporter struct{}

func NewReportExporter() *ReportExporter { return &ReportExporter{} }

// ExportSessions escribe una fila por turno, con título del rango y fila de totales al final.
func (e *ReportExporter) ExportSessions(r *dto.ReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	title := r.DateStart + " - " + r.DateEnd
	if from, to, err := dates.Range(r.DateStart, r.DateEnd); err == nil {
		title = analytics.RangeLabel(from, to)
	}
	_ = f.SetCellValue(sheet, "A1", "Reporte de turnos: "+title)
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	_ = f.SetCellStyle(sheet, "A1", "A1", bold)

	const headerRow = 3
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheet, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	_ = f.SetCellStyle(sheet, first, last, bold)

	rowIdx := headerRow + 1
	for _, s := range r.Sessions {
		values := []any{
			s.Table,
			deref(s.AttendedBy),
			deref(s.ClosedBy),
			s.StartedAt.Format("02/01/2006 15:04"),
			s.EndedAt.Format("02/01/2006 15:04"),
			s.TotalMinutes,
			s.EffectiveMinutes,
			consumptionSummary(s.Consumptions),
			amount(s.TimeSubtotal),
			amount(s.ProductsSubtotal),
			amount(s.ExtraServices),
			amount(s.Discount),
			amount(s.Total),
		}
		if err := writeRow(f, rowIdx, values); err != nil {
			return nil, err
		}
		rowIdx++
	}

	totals := []any{
		"TOTALES", "", "", "", "", "", "", "",
		amount(r.TotalTime),
		amount(r.TotalProducts),
		amount(r.TotalExtraServices),
		amount(r.TotalDiscounts),
		amount(r.TotalGeneral),
	}
	if err := writeRow(f, rowIdx, totals); err != nil {
		return nil, err
	}
	tFirst, _ := excelize.CoordinatesToCellName(1, rowIdx)
	tLast, _ := excelize.CoordinatesToCellName(len(headers), rowIdx)
	_ = f.SetCellStyle(sheet, tFirst, tLast, bold)
	_ = f.SetColWidth(sheet, "A", "H", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowIdx int, values []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("excel: fila %d: %w", rowIdx, err)
	}
	return nil
}

// amount como número para que la planilla pueda sumar.
func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func consumptionSummary(lines []dto.ReportConsumption) string {
	out := ""
	for i, c := range lines {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d x %s (%s)", c.Quantity, c.ProductName, money.Number(c.Subtotal))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
