package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/application/usecase"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// ExpenseHandler gastos del local (solo admin).
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
	errorResponder
}

func NewExpenseHandler(uc *usecase.ExpenseUseCase, log *logger.Logger) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Create godoc
// @Summary      Registrar gasto
// @Tags         gastos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "nombre, precio, cantidad"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/gastos [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar gastos
// @Tags         gastos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/gastos [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
