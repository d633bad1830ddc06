// Package dates interpreta las fechas de los filtros por rango (reportes y arqueos).
package dates

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutISO   = "2006-01-02"
	layoutLatam = "02/01/2006"
)

// Parse acepta "2025-11-20" o "20/11/2025" y devuelve la fecha a las 00:00:00, sin zona.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layout := layoutISO
	if strings.Contains(s, "/") {
		layout = layoutLatam
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("dates: %q: %w", s, err)
	}
	return t, nil
}

// StartOfDay devuelve t a las 00:00:00.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay devuelve el último microsegundo del día de t (23:59:59.999999), la resolución
// con la que se guardan los instantes.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999000, t.Location())
}

// Range interpreta el par de fechas y lo expande a [inicio del primer día, fin del último día].
func Range(from, to string) (start, end time.Time, err error) {
	f, err := Parse(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := Parse(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end = StartOfDay(f), EndOfDay(t)
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("dates: rango invertido %s > %s", from, to)
	}
	return start, end, nil
}
