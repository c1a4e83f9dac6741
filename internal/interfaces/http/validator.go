package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invoicer-api/internal/domain"
)

// NewValidator construye el validador de solicitudes: los campos se reportan con
// su nombre JSON y decimal.Decimal se valida por su signo (-1, 0, 1), así que
// gt=0 equivale a IsPositive aunque el valor no quepa en un float64.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidateRequest valida req y traduce los errores a un domain.ValidationError
// con el motivo por campo (ej. "lineItems[0].quantity": "gt").
func ValidateRequest(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe.Namespace())] = reason(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldPath quita el nombre del struct raíz del namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "email":
		return "debe ser un email válido"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "min":
		return "debe contener al menos " + fe.Param() + " elemento(s)"
	default:
		return "inválido (" + fe.Tag() + ")"
	}
}

// decodeStrict decodifica body en dst rechazando campos desconocidos,
// JSON mal formado y datos sobrantes.
func decodeStrict(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.NewValidationError("body", "requerido")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "contiene datos después del objeto JSON")
	}
	return nil
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewValidationError("body", "JSON mal formado")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domain.NewValidationError(field, "debe ser de tipo "+typeErr.Type.String())
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return domain.NewValidationError(name, "campo no permitido")
	default:
		return domain.NewValidationError("body", err.Error())
	}
}
