package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Los montos viajan como decimal.Decimal; gte/lte comparan contra su valor numérico.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los mensajes usan el nombre JSON del campo, no el de Go.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// requestError error de entrada detectado antes de llegar al caso de uso (siempre 400).
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

// bindBody parsea el cuerpo JSON en out y lo valida con sus tags validate.
func bindBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &requestError{code: "INVALID_BODY", message: "cuerpo inválido"}
	}
	return validateStruct(out)
}

// pageable lo implementan los filtros de listado que embeben dto.PageRequest.
type pageable interface {
	DefaultPage()
}

// bindQuery parsea el query string en out, aplica la paginación por defecto y valida.
func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return &requestError{code: "INVALID_QUERY", message: "parámetros de consulta inválidos"}
	}
	if p, ok := out.(pageable); ok {
		p.DefaultPage()
	}
	return validateStruct(out)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{code: "VALIDATION", message: err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return &requestError{code: "VALIDATION", message: strings.Join(msgs, "; ")}
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "email":
		return field + " debe ser un email válido"
	case "uuid":
		return field + " debe ser un UUID"
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "max", "min", "gte", "lte":
		return fmt.Sprintf("%s fuera de rango (%s=%s)", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s no cumple %s", field, fe.Tag())
	}
}

// uuidParam lee un parámetro de ruta que debe ser UUID y lo devuelve en forma canónica.
// Un id malformado nunca llega a la base: responde 400 INVALID_ID.
func uuidParam(c *fiber.Ctx, name string) (string, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return "", badRequest("INVALID_ID", name+" debe ser un UUID")
	}
	return id.String(), nil
}

// badRequest atajo para errores de parámetros de ruta.
func badRequest(code, message string) error {
	return &requestError{code: code, message: message}
}
