package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // devolución de consumo
	MovementTypeOUT        = "OUT"        // consumo en un turno
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
)

// StockMovement registra cada cambio de stock de un producto.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int    // positivo entrada, negativo salida
	Reference string // ID del consumo cuando aplica
	Date      time.Time
	CreatedBy string
}
