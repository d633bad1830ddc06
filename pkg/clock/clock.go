// Package clock provee la fuente única de "ahora" de la aplicación.
//
// Todos los instantes se manejan como hora civil de una zona fija (por defecto
// America/La_Paz) y se guardan sin zona: la hora local se copia a un time.Time
// en UTC con los mismos campos de fecha y hora. Mezclar zonas es un error, por
// eso todo el código toma la hora desde un Clock inyectado.
package clock

import (
	"fmt"
	"sync"
	"time"
)

// Clock devuelve la hora actual en la zona canónica, sin zona.
type Clock interface {
	Now() time.Time
}

// Zone es el Clock de producción: hora del sistema convertida a la zona configurada.
type Zone struct {
	loc *time.Location
}

// NewZone construye el reloj para la zona IANA indicada (ej. "America/La_Paz").
func NewZone(name string) (*Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("clock: zona %q: %w", name, err)
	}
	return &Zone{loc: loc}, nil
}

// Now devuelve la hora civil actual de la zona, sin zona.
func (z *Zone) Now() time.Time {
	return Naive(time.Now().In(z.loc))
}

// Location devuelve la zona configurada.
func (z *Zone) Location() *time.Location { return z.loc }

// Naive copia los campos civiles de t a un instante sin zona (UTC), truncado a microsegundos
// como lo guarda PostgreSQL.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC).
		Truncate(time.Microsecond)
}

// Fixed es un Clock controlable para tests.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed crea un reloj detenido en t.
func NewFixed(t time.Time) *Fixed { return &Fixed{now: Naive(t)} }

// Now devuelve el instante actual del reloj.
func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance adelanta el reloj d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Set fija el reloj en t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = Naive(t)
	f.mu.Unlock()
}
