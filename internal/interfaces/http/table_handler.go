package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/application/usecase"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// TableHandler maneja las peticiones HTTP para mesas.
type TableHandler struct {
	uc *usecase.TableUseCase
	errorResponder
}

// NewTableHandler construye el handler.
func NewTableHandler(uc *usecase.TableUseCase, log *logger.Logger) *TableHandler {
	return &TableHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Create godoc
// @Summary      Crear mesa
// @Tags         mesas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTableRequest  true  "Datos de la mesa"
// @Success      201   {object}  dto.TableResponse
// @Failure      422   {object}  ValidationErrorResponse
// @Router       /api/mesas [post]
func (h *TableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTableRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mesas con su turno activo
// @Tags         mesas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TableResponse
// @Router       /api/mesas [get]
func (h *TableHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener mesa
// @Tags         mesas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la mesa"
// @Success      200  {object}  dto.TableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mesas/{id} [get]
func (h *TableHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar mesa (nombre, tarifa, imagen)
// @Tags         mesas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la mesa"
// @Param        body  body  dto.UpdateTableRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TableResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/mesas/{id} [put]
func (h *TableHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	var in dto.UpdateTableRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar mesa
// @Tags         mesas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la mesa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/mesas/{id} [delete]
func (h *TableHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
