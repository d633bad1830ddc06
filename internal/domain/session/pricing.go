// Package session implementa la contabilidad de tiempo de un turno y su tarifa
// escalonada (servicio de dominio, sin dependencias de infraestructura).
//
// Minutos efectivos = (asOf − inicio − segundos en pausa) / 60, nunca negativo.
// Es la única fuente de tiempo facturable: la usan el preview, el cierre y
// cualquier vista que muestre el cronómetro de un turno.
package session

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
)

var two = decimal.NewFromInt(2)

// PauseSeconds devuelve los segundos de pausa acumulados más la pausa en curso (si la hay) hasta asOf.
func PauseSeconds(s *entity.Session, asOf time.Time) int64 {
	total := s.PausedSeconds
	if s.PauseStartedAt != nil {
		total += elapsedSeconds(*s.PauseStartedAt, asOf)
	}
	return total
}

// EffectiveSeconds devuelve los segundos jugados (sin pausas) entre start y asOf.
func EffectiveSeconds(s *entity.Session, asOf, start time.Time) int64 {
	total := int64(asOf.Sub(start) / time.Second)
	eff := total - PauseSeconds(s, asOf)
	if eff < 0 {
		return 0
	}
	return eff
}

// EffectiveMinutes devuelve los minutos facturables del turno hasta asOf. startOverride
// reemplaza la hora de inicio del turno cuando no es nil.
func EffectiveMinutes(s *entity.Session, asOf time.Time, startOverride *time.Time) float64 {
	start := s.StartedAt
	if startOverride != nil {
		start = *startOverride
	}
	return float64(EffectiveSeconds(s, asOf, start)) / 60
}

// TimePrice aplica la tarifa escalonada:
//   - hasta 30 minutos inclusive se cobra media hora;
//   - desde ahí, cada hora completa a tarifa plena y el resto suma una hora completa
//     si es de 31 minutos o más, o media hora si es menor.
func TimePrice(minutes float64, hourlyRate decimal.Decimal) decimal.Decimal {
	half := hourlyRate.Div(two)
	if minutes <= 30 {
		return half
	}
	fullHours := math.Floor(minutes / 60)
	remainder := math.Mod(minutes, 60)

	price := hourlyRate.Mul(decimal.NewFromInt(int64(fullHours)))
	if remainder >= 31 {
		return price.Add(hourlyRate)
	}
	return price.Add(half)
}

// Total calcula tiempo + productos + servicios extra − descuento.
func Total(s *entity.Session) decimal.Decimal {
	return s.TimeSubtotal.Add(s.ProductsSubtotal).Add(s.ExtraServices).Sub(s.Discount)
}

// AsOf devuelve el instante de corte para calcular el turno: la hora de cierre si
// está cerrado (el tiempo queda congelado) o now en otro caso.
func AsOf(s *entity.Session, now time.Time) time.Time {
	if s.EndedAt != nil {
		return *s.EndedAt
	}
	return now
}

// Recompute recalcula el subtotal de tiempo y el total con corte en asOf.
func Recompute(s *entity.Session, asOf time.Time) {
	s.TimeSubtotal = TimePrice(EffectiveMinutes(s, asOf, nil), s.HourlyRate)
	s.Total = Total(s)
}

func elapsedSeconds(from, to time.Time) int64 {
	d := int64(to.Sub(from) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}
