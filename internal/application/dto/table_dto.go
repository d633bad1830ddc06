package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTableRequest entrada para crear una mesa. Se crea siempre libre.
type CreateTableRequest struct {
	Name       string          `json:"nombre" validate:"required,min=1,max=100"`
	HourlyRate decimal.Decimal `json:"tarifa_por_hora" validate:"gte=0"`
	Image      string          `json:"imagen"`
}

// UpdateTableRequest actualización administrativa: nil = sin cambios. El estado no se edita.
type UpdateTableRequest struct {
	Name       *string          `json:"nombre" validate:"omitempty,min=1,max=100"`
	HourlyRate *decimal.Decimal `json:"tarifa_por_hora" validate:"omitempty,gte=0"`
	Image      *string          `json:"imagen"`
}

// TableResponse salida de una mesa con la proyección de su turno activo.
type TableResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"nombre"`
	HourlyRate    decimal.Decimal `json:"tarifa_por_hora"`
	Status        string          `json:"estado"`
	Image         string          `json:"imagen,omitempty"`
	StartedAt     *time.Time      `json:"hora_inicio"`
	ActiveSession *string         `json:"turno_activo"`
	SessionStatus *string         `json:"turno_estado"`
	PauseStarted  *time.Time      `json:"pausa_inicio"`
	PausedSeconds int64           `json:"pausa_acumulada_seg"`
}
