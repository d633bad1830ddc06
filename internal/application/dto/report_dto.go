package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRequest filtros del reporte de turnos cerrados.
type ReportRequest struct {
	DateStart string `query:"fecha_inicio" validate:"required"`
	DateEnd   string `query:"fecha_fin" validate:"required"`
	TableID   string `query:"mesa_id"`
}

// ReportConsumption consumo dentro de un turno del reporte.
type ReportConsumption struct {
	ProductName string          `json:"producto_nombre"`
	Quantity    int             `json:"cantidad"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ReportSession un turno cerrado del reporte.
type ReportSession struct {
	Table            string              `json:"mesa"`
	AttendedBy       *string             `json:"atendido_por"`
	ClosedBy         *string             `json:"facturado_por"`
	StartedAt        time.Time           `json:"hora_inicio"`
	EndedAt          time.Time           `json:"hora_fin"`
	TotalMinutes     int                 `json:"tiempo_total_min"`
	EffectiveMinutes int                 `json:"tiempo_efectivo_min"`
	TimeSubtotal     decimal.Decimal     `json:"subtotal_tiempo"`
	ProductsSubtotal decimal.Decimal     `json:"subtotal_productos"`
	Discount         decimal.Decimal     `json:"descuento"`
	ExtraServices    decimal.Decimal     `json:"servicios_extras"`
	Total            decimal.Decimal     `json:"total_final"`
	Consumptions     []ReportConsumption `json:"consumos"`
}

// ReportResponse reporte de turnos con totales.
type ReportResponse struct {
	DateStart          string          `json:"fecha_inicio"`
	DateEnd            string          `json:"fecha_fin"`
	TableID            *string         `json:"mesa_id"`
	Sessions           []ReportSession `json:"turnos"`
	TotalTime          decimal.Decimal `json:"total_tiempo"`
	TotalProducts      decimal.Decimal `json:"total_productos"`
	TotalDiscounts     decimal.Decimal `json:"total_descuentos"`
	TotalExtraServices decimal.Decimal `json:"total_servicios_extras"`
	TotalGeneral       decimal.Decimal `json:"total_general"`
}
