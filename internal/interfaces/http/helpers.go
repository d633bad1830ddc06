package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número (gte=0, gt=0).
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// ValidationErrorResponse 422 con el detalle por campo.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// bindAndValidate parsea el body JSON y aplica las reglas validate.
// Si falla escribe la respuesta y devuelve false; el handler debe retornar sin escribir otra.
func bindAndValidate(c *fiber.Ctx, req interface{}) bool {
	if err := c.BodyParser(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	return validateStruct(c, req)
}

// bindQuery igual que bindAndValidate pero para query params.
func bindQuery(c *fiber.Ctx, req interface{}) bool {
	if err := c.QueryParser(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *fiber.Ctx, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	_ = c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
		Code: "VALIDATION", Message: "datos inválidos", Fields: fields,
	})
	return false
}

var errorCodes = map[error]string{
	domain.ErrTableNotFound:         "TABLE_NOT_FOUND",
	domain.ErrSessionNotActive:      "SESSION_NOT_ACTIVE",
	domain.ErrSessionNotFound:       "SESSION_NOT_FOUND",
	domain.ErrProductNotFound:       "PRODUCT_NOT_FOUND",
	domain.ErrConsumptionNotFound:   "CONSUMPTION_NOT_FOUND",
	domain.ErrCategoryNotFound:      "CATEGORY_NOT_FOUND",
	domain.ErrUserNotFound:          "USER_NOT_FOUND",
	domain.ErrClosingNotFound:       "CLOSING_NOT_FOUND",
	domain.ErrNoActiveSession:       "NO_ACTIVE_SESSION",
	domain.ErrTableOccupied:         "TABLE_OCCUPIED",
	domain.ErrTableInUse:            "TABLE_IN_USE",
	domain.ErrTableHasHistory:       "TABLE_HAS_HISTORY",
	domain.ErrDestinationOccupied:   "DESTINATION_OCCUPIED",
	domain.ErrDestinationHasSession: "DESTINATION_HAS_SESSION",
	domain.ErrDuplicate:             "DUPLICATE",
	domain.ErrSameTable:             "SAME_TABLE",
	domain.ErrNoMatchingSessions:    "NO_MATCHING_SESSIONS",
	domain.ErrInvalidDate:           "INVALID_DATE",
	domain.ErrTransferFailed:        "TRANSFER_FAILED",
	domain.ErrInsufficientStock:     "INSUFFICIENT_STOCK",
	domain.ErrInvalidInput:          "VALIDATION",
	domain.ErrUnauthorized:          "UNAUTHORIZED",
	domain.ErrForbidden:             "FORBIDDEN",
	domain.ErrNotFound:              "NOT_FOUND",
	domain.ErrConflict:              "CONFLICT",
}

var kindStatus = map[domain.Kind]int{
	domain.KindNotFound:     fiber.StatusNotFound,
	domain.KindConflict:     fiber.StatusConflict,
	domain.KindValidation:   fiber.StatusBadRequest,
	domain.KindInsufficient: fiber.StatusConflict,
	domain.KindUnauthorized: fiber.StatusUnauthorized,
	domain.KindForbidden:    fiber.StatusForbidden,
}

// errorResponder traduce errores de dominio a HTTP. Los 5xx se registran una sola vez aquí.
type errorResponder struct {
	log *logger.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		if status, ok := kindStatus[de.Kind()]; ok {
			return c.Status(status).JSON(dto.ErrorResponse{Code: codeFor(de), Message: de.Error()})
		}
	}
	r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	code := "INTERNAL"
	msg := "error interno"
	if de != nil {
		code = codeFor(de)
		msg = de.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func codeFor(de *domain.Error) string {
	if code, ok := errorCodes[de]; ok {
		return code
	}
	return "ERROR"
}

func missingID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: name + " es requerido"})
}
