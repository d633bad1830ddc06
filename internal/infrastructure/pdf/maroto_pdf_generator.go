// Package pdf genera el comprobante del arqueo de caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del local     │  N° Arqueo + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAJERO + RANGO DE FECHAS + cantidad de turnos               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Tiempo / Productos / Servicios / Descuentos        │
//	│           TOTAL GENERAL                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAJA: Monto retirado / Monto de cambio / Observación        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/billartiochichi/billar-api/internal/application/caja"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/pkg/money"
)

var _ caja.ReceiptRenderer = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 90, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa caja.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct {
	business string
}

// NewReceiptGenerator construye el generador. business es el nombre que encabeza el comprobante.
func NewReceiptGenerator(business string) *ReceiptGenerator {
	if business == "" {
		business = "Billar"
	}
	return &ReceiptGenerator{business: business}
}

// RenderClosing genera el PDF del arqueo y devuelve sus bytes.
func (g *ReceiptGenerator) RenderClosing(c *entity.CashClosing, username string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Arqueo de caja", true).
		WithAuthor(g.business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(cashierRow(c, username))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("TOTALES DEL PERIODO"))
	m.AddRows(
		amountRow("Tiempo de juego", c.TotalTime, false),
		amountRow("Productos", c.TotalProducts, false),
		amountRow("Servicios extras", c.TotalExtraServices, false),
		amountRow("Descuentos", c.TotalDiscounts.Neg(), false),
		amountRow("TOTAL GENERAL", c.TotalGeneral, true),
	)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionRow("CAJA"))
	m.AddRows(
		amountRow("Monto retirado", c.Withdrawn, false),
		amountRow("Monto de cambio", c.Change, false),
	)
	if c.Note != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Observación: "+c.Note, props.Text{Size: 8, Top: 3, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReceiptGenerator) headerRow(c *entity.CashClosing) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de arqueo de caja", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ARQUEO N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(c.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+c.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func cashierRow(c *entity.CashClosing, username string) core.Row {
	if username == "" {
		username = "-"
	}
	rango := fmt.Sprintf("Desde %s hasta %s", c.RangeStart.Format("02/01/2006"), c.RangeEnd.Format("02/01/2006"))
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CAJERO: "+username, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
			text.New(fmt.Sprintf("%s   |   Turnos incluidos: %d", rango, c.SessionCount), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func amountRow(label string, amount decimal.Decimal, grand bool) core.Row {
	p := props.Text{Size: 9, Top: 1}
	if grand {
		p = props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2}
	}
	right := p
	right.Align = align.Right
	right.Right = 1
	return row.New(7).Add(
		col.New(3),
		col.New(4).Add(text.New(label, p)),
		col.New(3).Add(text.New(money.Format(amount), right)),
		col.New(2),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// shortID primeros 8 caracteres del UUID, suficientes para identificar el comprobante en papel.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
