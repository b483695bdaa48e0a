package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrAccountLocked       = errors.New("cuenta bloqueada temporalmente")
	ErrFormulationNotFound = errors.New("formulación no encontrada")
	ErrInsufficientStock   = errors.New("stock insuficiente")
)
