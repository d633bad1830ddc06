package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"nombre" validate:"required,min=1,max=200"`
	PurchasePrice decimal.Decimal `json:"precio_compra" validate:"gte=0"`
	SalePrice     decimal.Decimal `json:"precio_venta" validate:"gte=0"`
	Stock         int             `json:"cantidad" validate:"gte=0"`
	Image         string          `json:"imagen"`
	CategoryID    string          `json:"categoria_id"`
}

// UpdateProductRequest actualización parcial: nil = sin cambios. CategoryID vacío quita la categoría.
type UpdateProductRequest struct {
	Name          *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	PurchasePrice *decimal.Decimal `json:"precio_compra" validate:"omitempty,gte=0"`
	SalePrice     *decimal.Decimal `json:"precio_venta" validate:"omitempty,gte=0"`
	Image         *string          `json:"imagen"`
	CategoryID    *string          `json:"categoria_id"`
}

// StockDeltaRequest ajuste manual de stock (positivo o negativo).
type StockDeltaRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"nombre"`
	PurchasePrice decimal.Decimal   `json:"precio_compra"`
	SalePrice     decimal.Decimal   `json:"precio_venta"`
	Stock         int               `json:"cantidad"`
	Image         string            `json:"imagen,omitempty"`
	CategoryID    string            `json:"categoria_id,omitempty"`
	Category      *CategoryResponse `json:"categoria,omitempty"`
}

// StockMovementResponse salida de un movimiento de stock.
type StockMovementResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"producto_id"`
	Type      string `json:"tipo"`
	Quantity  int    `json:"cantidad"`
	Reference string `json:"referencia,omitempty"`
	Date      string `json:"fecha"`
	CreatedBy string `json:"creado_por,omitempty"`
}
