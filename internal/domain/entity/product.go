package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario del local (bebidas, snacks, etc.).
// Stock nunca es negativo; solo cambia mediante movimientos de inventario.
type Product struct {
	ID            string
	Name          string
	PurchasePrice decimal.Decimal // precio de compra
	SalePrice     decimal.Decimal // precio de venta, el que se cobra en consumos
	Stock         int
	CategoryID    string // vacío si no tiene categoría
	Image         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
