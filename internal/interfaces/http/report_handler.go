package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billartiochichi/billar-api/internal/application/analytics"
	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// ReportHandler reporte de turnos cerrados.
type ReportHandler struct {
	uc *analytics.ReportUseCase
	errorResponder
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, errorResponder: errorResponder{log: log}}
}

// Sessions godoc
// @Summary      Reporte de turnos cerrados
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  true   "YYYY-MM-DD o DD/MM/YYYY"
// @Param        fecha_fin     query  string  true   "YYYY-MM-DD o DD/MM/YYYY"
// @Param        mesa_id       query  string  false  "filtrar por mesa"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes [get]
func (h *ReportHandler) Sessions(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if !bindQuery(c, &in) {
		return nil
	}
	out, err := h.uc.Sessions(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Reporte de turnos cerrados en Excel
// @Tags         reportes
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        fecha_inicio  query  string  true   "YYYY-MM-DD o DD/MM/YYYY"
// @Param        fecha_fin     query  string  true   "YYYY-MM-DD o DD/MM/YYYY"
// @Param        mesa_id       query  string  false  "filtrar por mesa"
// @Success      200  {file}  binary
// @Router       /api/reportes/excel [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if !bindQuery(c, &in) {
		return nil
	}
	out, err := h.uc.Export(c.UserContext(), in)
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-turnos.xlsx"`)
	return c.Send(out)
}
