package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billartiochichi/billar-api/internal/application/caja"
	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// CashHandler arqueo de caja.
type CashHandler struct {
	uc *caja.UseCase
	errorResponder
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *caja.UseCase, log *logger.Logger) *CashHandler {
	return &CashHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Close godoc
// @Summary      Cerrar caja del usuario en un rango de fechas
// @Tags         arqueo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseRegisterRequest  true  "rango, monto retirado y cambio"
// @Success      201   {object}  dto.CashClosingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/arqueo/cerrar [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseRegisterRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.CloseRegister(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar arqueos (propios; admin ve todos)
// @Tags         arqueo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CashClosingResponse
// @Router       /api/arqueo [get]
func (h *CashHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c), GetRole(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener arqueo
// @Tags         arqueo
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del arqueo"
// @Success      200  {object}  dto.CashClosingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/arqueo/{id} [get]
func (h *CashHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	out, err := h.uc.Get(c.UserContext(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del arqueo
// @Tags         arqueo
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del arqueo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/arqueo/{id}/pdf [get]
func (h *CashHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	out, err := h.uc.Receipt(c.UserContext(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="arqueo-`+id+`.pdf"`)
	return c.Send(out)
}
