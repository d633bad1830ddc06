package domain

import "errors"

// Kind clasifica los errores de dominio para que las capas externas decidan la respuesta.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindInsufficient
	KindInternal
	KindUnauthorized
	KindForbidden
)

// Error es un error de dominio con tipo. errors.Is(err, ErrNotFound) es verdadero
// para cualquier error específico de tipo KindNotFound.
type Error struct {
	kind Kind
	msg  string
}

func newError(kind Kind, msg string) *Error { return &Error{kind: kind, msg: msg} }

func (e *Error) Error() string { return e.msg }

// Kind devuelve el tipo del error.
func (e *Error) Kind() Kind { return e.kind }

// Is permite comparar un error específico contra el sentinel base de su tipo.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e == t {
		return true
	}
	return t.base() && t.kind == e.kind
}

func (e *Error) base() bool {
	for _, b := range bases {
		if e == b {
			return true
		}
	}
	return false
}

// Errores base (sin dependencias externas).
var (
	ErrNotFound          = newError(KindNotFound, "recurso no encontrado")
	ErrConflict          = newError(KindConflict, "conflicto con el estado actual")
	ErrInvalidInput      = newError(KindValidation, "entrada inválida")
	ErrInsufficientStock = newError(KindInsufficient, "stock insuficiente")
	ErrInternal          = newError(KindInternal, "error interno")
	ErrUnauthorized      = newError(KindUnauthorized, "no autorizado")
	ErrForbidden         = newError(KindForbidden, "acceso denegado")
)

var bases = []*Error{
	ErrNotFound, ErrConflict, ErrInvalidInput, ErrInsufficientStock,
	ErrInternal, ErrUnauthorized, ErrForbidden,
}

// Errores específicos de mesas, turnos y consumos.
var (
	ErrTableNotFound         = newError(KindNotFound, "mesa no encontrada")
	ErrSessionNotActive      = newError(KindNotFound, "turno no encontrado o ya cerrado")
	ErrSessionNotFound       = newError(KindNotFound, "turno no encontrado")
	ErrProductNotFound       = newError(KindNotFound, "producto no encontrado")
	ErrConsumptionNotFound   = newError(KindNotFound, "consumo no encontrado")
	ErrCategoryNotFound      = newError(KindNotFound, "categoría no encontrada")
	ErrUserNotFound          = newError(KindNotFound, "usuario no encontrado")
	ErrClosingNotFound       = newError(KindNotFound, "arqueo no encontrado")
	ErrNoActiveSession       = newError(KindNotFound, "no hay turno activo (abierto/pausado) en la mesa origen")
	ErrTableOccupied         = newError(KindConflict, "la mesa ya tiene un turno activo")
	ErrTableInUse            = newError(KindConflict, "la mesa tiene un turno activo y no puede eliminarse")
	ErrTableHasHistory       = newError(KindConflict, "la mesa tiene turnos registrados y no puede eliminarse")
	ErrDestinationOccupied   = newError(KindConflict, "la mesa destino ya está ocupada")
	ErrDestinationHasSession = newError(KindConflict, "la mesa destino ya tiene un turno activo")
	ErrDuplicate             = newError(KindConflict, "recurso duplicado")
	ErrSameTable             = newError(KindValidation, "mesa destino no puede ser igual a mesa origen")
	ErrNoMatchingSessions    = newError(KindValidation, "no hay turnos cerrados en ese rango para este usuario")
	ErrInvalidDate           = newError(KindValidation, "fecha inválida, use YYYY-MM-DD o DD/MM/YYYY")
	ErrTransferFailed        = newError(KindInternal, "error al transferir el turno")
)

// KindOf devuelve el tipo de un error de dominio (envuelto o no). Errores ajenos al dominio
// se consideran internos.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var de *Error
	if errors.As(err, &de) {
		return de.kind
	}
	return KindInternal
}
