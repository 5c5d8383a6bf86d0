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

	// Errores propios del ciclo de vida de cotizaciones.
	ErrQuoteConfirmed  = errors.New("la cotización ya fue confirmada y no admite cambios")
	ErrMissingRate     = errors.New("falta el tipo de cambio para ítems en moneda extranjera")
	ErrIncompleteQuote = errors.New("la cotización está incompleta para confirmar")
)
