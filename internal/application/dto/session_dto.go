package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartSessionRequest body para POST /api/turnos/iniciar.
type StartSessionRequest struct {
	TableID    string          `json:"mesa_id" validate:"required"`
	HourlyRate decimal.Decimal `json:"tarifa_hora" validate:"gte=0"`
}

// AddProductRequest body para POST /api/turnos/:id/agregar-producto.
type AddProductRequest struct {
	ProductID string `json:"producto_id" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"gt=0"`
}

// CloseSessionRequest body para PATCH /api/turnos/:id/cerrar.
type CloseSessionRequest struct {
	Discount      decimal.Decimal `json:"descuento" validate:"gte=0"`
	ExtraServices decimal.Decimal `json:"servicios_extras" validate:"gte=0"`
}

// TransferSessionRequest body para PATCH /api/turnos/transferir/:mesa_origen_id.
type TransferSessionRequest struct {
	DestinationTableID string `json:"mesa_destino_id" validate:"required"`
}

// ConsumptionResponse una línea de consumo.
type ConsumptionResponse struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"turno_id"`
	ProductID   string          `json:"producto_id"`
	ProductName string          `json:"producto_nombre"`
	Quantity    int             `json:"cantidad"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SessionResponse snapshot de un turno con sus consumos y el tiempo efectivo al momento de la consulta.
type SessionResponse struct {
	ID                string                `json:"id"`
	TableID           string                `json:"mesa_id"`
	StartedAt         time.Time             `json:"hora_inicio"`
	EndedAt           *time.Time            `json:"hora_fin"`
	HourlyRate        decimal.Decimal       `json:"tarifa_hora"`
	TimeSubtotal      decimal.Decimal       `json:"subtotal_tiempo"`
	ProductsSubtotal  decimal.Decimal       `json:"subtotal_productos"`
	ExtraServices     decimal.Decimal       `json:"servicios_extras"`
	Discount          decimal.Decimal       `json:"descuento"`
	Total             decimal.Decimal       `json:"total_final"`
	Status            string                `json:"estado"`
	PauseStartedAt    *time.Time            `json:"pausa_inicio"`
	PausedSeconds     int64                 `json:"pausa_acumulada_seg"`
	PauseTotalSeconds int64                 `json:"pausa_total_seg"`
	EffectiveMinutes  float64               `json:"minutos_efectivos"`
	AttendedBy        string                `json:"atendido_por_id,omitempty"`
	ClosedBy          string                `json:"cobrado_por_id,omitempty"`
	Consumptions      []ConsumptionResponse `json:"consumos"`
}

// TransferResponse salida de una transferencia exitosa.
type TransferResponse struct {
	Message            string `json:"mensaje"`
	SessionID          string `json:"turno_id"`
	SourceTableID      string `json:"mesa_origen_id"`
	DestinationTableID string `json:"mesa_destino_id"`
}

// CreateConsumptionRequest body para POST /api/consumos.
type CreateConsumptionRequest struct {
	SessionID string `json:"turno_id" validate:"required"`
	ProductID string `json:"producto_id" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"gt=0"`
}
