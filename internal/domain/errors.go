package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrStore        = errors.New("fallo del almacén de documentos")
)

// Errores de validación de facturas; ambos envuelven ErrInvalidInput.
var (
	ErrNoDepartment       = fmt.Errorf("%w: seleccione al menos un departamento", ErrInvalidInput)
	ErrClientNameRequired = fmt.Errorf("%w: client_name es requerido", ErrInvalidInput)
)
