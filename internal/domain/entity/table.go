package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de disponibilidad de una mesa.
const (
	TableStatusFree     = "libre"
	TableStatusOccupied = "ocupada"
)

// Table representa una mesa de billar, la unidad de disponibilidad.
// El estado solo cambia como efecto de iniciar, cerrar o transferir un turno.
type Table struct {
	ID         string
	Name       string
	HourlyRate decimal.Decimal // tarifa por hora vigente (el turno guarda su propia copia)
	Status     string          // libre, ocupada
	Image      string          // URL o ruta; vacío si no tiene
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Occupied indica si la mesa está marcada como ocupada.
func (t *Table) Occupied() bool { return t.Status == TableStatusOccupied }
