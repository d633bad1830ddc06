package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/application/inventory"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// InventoryHandler ajustes manuales de stock y su historial.
type InventoryHandler struct {
	uc *inventory.StockLedgerUseCase
	errorResponder
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockLedgerUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// AdjustStock godoc
// @Summary      Ajustar stock (delta positivo o negativo)
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del producto"
// @Param        body  body  dto.StockDeltaRequest  true  "delta"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/stock [patch]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	var in dto.StockDeltaRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.AdjustStockFromRequest(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de stock de un producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/productos/{id}/movimientos [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.uc.ListMovementsResponse(c.UserContext(), id, page.Limit, page.Offset)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
