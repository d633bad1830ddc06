package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CloseRegisterRequest body para POST /api/arqueo/cerrar. Fechas en YYYY-MM-DD o DD/MM/YYYY.
type CloseRegisterRequest struct {
	DateStart string          `json:"fecha_inicio" validate:"required"`
	DateEnd   string          `json:"fecha_fin" validate:"required"`
	Withdrawn decimal.Decimal `json:"monto_retirado" validate:"gte=0"`
	Change    decimal.Decimal `json:"monto_cambio" validate:"gte=0"`
	Note      *string         `json:"observacion"`
}

// CashClosingResponse salida de un arqueo.
type CashClosingResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"usuario_id"`
	RangeStart         time.Time       `json:"fecha_inicio"`
	RangeEnd           time.Time       `json:"fecha_fin"`
	TotalTime          decimal.Decimal `json:"total_tiempo"`
	TotalProducts      decimal.Decimal `json:"total_productos"`
	TotalDiscounts     decimal.Decimal `json:"total_descuentos"`
	TotalExtraServices decimal.Decimal `json:"total_servicios_extras"`
	TotalGeneral       decimal.Decimal `json:"total_general"`
	Withdrawn          decimal.Decimal `json:"monto_retirado"`
	Change             decimal.Decimal `json:"monto_cambio"`
	Note               *string         `json:"observacion"`
	SessionCount       int             `json:"cantidad_turnos"`
	CreatedAt          time.Time       `json:"creado_en"`
}
