package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/application/turno"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// SessionHandler expone el ciclo de vida de los turnos y sus consumos.
type SessionHandler struct {
	uc *turno.UseCase
	errorResponder
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *turno.UseCase, log *logger.Logger) *SessionHandler {
	return &SessionHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Active godoc
// @Summary      Turnos activos (abiertos o pausados)
// @Tags         turnos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SessionResponse
// @Router       /api/turnos/activos [get]
func (h *SessionHandler) Active(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar turno en una mesa libre
// @Tags         turnos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartSessionRequest  true  "mesa y tarifa (0 = tarifa de la mesa)"
// @Success      201   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/turnos/iniciar [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var in dto.StartSessionRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Start(c.UserContext(), in.TableID, in.HourlyRate, GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener turno
// @Tags         turnos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/turnos/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Cuánto costaría el turno si se cerrara ahora
// @Tags         turnos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/preview [get]
func (h *SessionHandler) Preview(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	out, err := h.uc.Preview(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Pause godoc
// @Summary      Pausar turno
// @Tags         turnos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/pausar [patch]
func (h *SessionHandler) Pause(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	out, err := h.uc.Pause(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Resume godoc
// @Summary      Reanudar turno
// @Tags         turnos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del turno"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/reanudar [patch]
func (h *SessionHandler) Resume(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	out, err := h.uc.Resume(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar y cobrar turno
// @Tags         turnos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del turno"
// @Param        body  body  dto.CloseSessionRequest  true  "descuento y servicios extras"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  ValidationErrorResponse
// @Router       /api/turnos/{id}/cerrar [patch]
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	var in dto.CloseSessionRequest
	// body opcional: sin body se cierra sin descuento ni extras
	if len(c.Body()) > 0 && !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Close(c.UserContext(), id, in.Discount, in.ExtraServices, GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir el turno activo a otra mesa
// @Tags         turnos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        mesa_origen_id  path  string                      true  "ID de la mesa origen"
// @Param        body            body  dto.TransferSessionRequest  true  "mesa destino"
// @Success      200  {object}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/turnos/transferir/{mesa_origen_id} [patch]
func (h *SessionHandler) Transfer(c *fiber.Ctx) error {
	src := c.Params("mesa_origen_id")
	if src == "" {
		return missingID(c, "mesa_origen_id")
	}
	var in dto.TransferSessionRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Transfer(c.UserContext(), src, in.DestinationTableID)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// AddProduct godoc
// @Summary      Agregar producto al turno
// @Tags         turnos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del turno"
// @Param        body  body  dto.AddProductRequest  true  "producto y cantidad"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/turnos/{id}/agregar-producto [post]
func (h *SessionHandler) AddProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	var in dto.AddProductRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.AddConsumption(c.UserContext(), id, in.ProductID, in.Quantity, GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CreateConsumption godoc
// @Summary      Registrar consumo
// @Tags         consumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConsumptionRequest  true  "turno, producto y cantidad"
// @Success      201   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumos [post]
func (h *SessionHandler) CreateConsumption(c *fiber.Ctx) error {
	var in dto.CreateConsumptionRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.AddConsumption(c.UserContext(), in.SessionID, in.ProductID, in.Quantity, GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListConsumptions godoc
// @Summary      Consumos de un turno
// @Tags         consumos
// @Security     Bearer
// @Produce      json
// @Param        turno_id  path  string  true  "ID del turno"
// @Success      200  {array}  dto.ConsumptionResponse
// @Router       /api/consumos/turno/{turno_id} [get]
func (h *SessionHandler) ListConsumptions(c *fiber.Ctx) error {
	id := c.Params("turno_id")
	if id == "" {
		return missingID(c, "turno_id")
	}
	out, err := h.uc.ListConsumptions(c.UserContext(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// RemoveConsumption godoc
// @Summary      Eliminar consumo (devuelve el stock)
// @Tags         consumos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del consumo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consumos/{id} [delete]
func (h *SessionHandler) RemoveConsumption(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c, "id")
	}
	if err := h.uc.RemoveConsumption(c.UserContext(), id, GetUserID(c)); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "Consumo eliminado"})
}
