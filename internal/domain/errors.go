package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrInvalidTransition: el estado destino no está permitido desde el estado actual.
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	// ErrInvoiceLocked: la factura ya no está en DRAFT y no admite cambios.
	ErrInvoiceLocked = errors.New("la factura no es editable")
)
