package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicateSKU        = errors.New("el SKU ya está registrado")
	ErrMalformedSKU        = errors.New("SKU mal formado")
	ErrRegistryUnavailable = errors.New("base de custos no disponible")
	ErrMalformedFile       = errors.New("archivo de ventas mal formado")
	ErrEmptySalesFile      = errors.New("archivo de ventas vacío")
	ErrNoSalesLoaded       = errors.New("no hay planilla de ventas cargada")
	ErrUnauthorized        = errors.New("no autorizado")
)
