package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consumption es una línea de consumo: un producto vendido dentro de un turno.
// Inmutable una vez creada; eliminarla devuelve el stock.
type Consumption struct {
	ID          string
	SessionID   string
	ProductID   string
	ProductName string // solo lectura, resuelto al listar
	Quantity    int
	Subtotal    decimal.Decimal // cantidad × precio de venta al momento del consumo
	CreatedAt   time.Time
}
