package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrRender       = errors.New("no se pudo generar el documento")
	ErrPersistence  = errors.New("error de persistencia")
)

// Kind código legible por máquina asociado a cada error de dominio.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindRender      Kind = "RENDER_FAILED"
	KindPersistence Kind = "PERSISTENCE_FAILED"
	KindInternal    Kind = "INTERNAL"
)

// KindOf devuelve el Kind del primer error de dominio encontrado en la cadena de err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrRender):
		return KindRender
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	default:
		return KindInternal
	}
}

// ValidationError detalla qué campos de la entrada son inválidos.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un error con un único campo inválido.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
