package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un turno.
const (
	SessionOpen   = "abierto"
	SessionPaused = "pausado"
	SessionClosed = "cerrado"
)

// ActiveSessionStatuses estados en los que un turno ocupa su mesa.
var ActiveSessionStatuses = []string{SessionOpen, SessionPaused}

// Session representa un turno: una ocupación cronometrada de una mesa, de apertura a cierre.
// Los instantes son hora civil de la zona canónica, sin zona (naive).
type Session struct {
	ID               string
	TableID          string
	HourlyRate       decimal.Decimal // copia de la tarifa al iniciar
	StartedAt        time.Time
	EndedAt          *time.Time
	PausedSeconds    int64      // segundos de pausa ya acumulados
	PauseStartedAt   *time.Time // presente si y solo si hay una pausa activa
	ProductsSubtotal decimal.Decimal
	TimeSubtotal     decimal.Decimal
	Discount         decimal.Decimal
	ExtraServices    decimal.Decimal
	Total            decimal.Decimal
	Status           string // abierto, pausado, cerrado
	AttendedBy       string // usuario que abrió el turno
	ClosedBy         string // usuario que cobró; vacío hasta el cierre
	UpdatedAt        time.Time
}

// Active indica si el turno está abierto o pausado.
func (s *Session) Active() bool {
	return s.Status == SessionOpen || s.Status == SessionPaused
}
