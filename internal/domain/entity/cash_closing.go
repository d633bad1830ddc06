package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashClosing es un arqueo de caja: resumen inmutable de los turnos cerrados
// de un usuario en un rango de fechas.
type CashClosing struct {
	ID                 string
	UserID             string
	RangeStart         time.Time
	RangeEnd           time.Time
	TotalTime          decimal.Decimal
	TotalProducts      decimal.Decimal
	TotalDiscounts     decimal.Decimal
	TotalExtraServices decimal.Decimal
	TotalGeneral       decimal.Decimal
	Withdrawn          decimal.Decimal // monto retirado
	Change             decimal.Decimal // monto que queda como cambio
	Note               string
	SessionCount       int
	CreatedAt          time.Time
}
