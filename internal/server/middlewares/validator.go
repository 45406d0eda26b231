package middlewares

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/lists/internal/listerror"
	"github.com/mdouchement/lists/internal/model"
	"github.com/pkg/errors"
)

type structValidator struct {
	validate *validator.Validate
}

// NewValidator returns an echo.Validator that checks the `validate` tags of bound parameters.
// Failures are rendered as invalid-parameters errors.
//
// It registers the `list_type` tag, that accepts only the supported list types.
func NewValidator() echo.Validator {
	v := validator.New()

	// Reports the field names as they appear in the request.
	v.RegisterTagNameFunc(requestName)

	_ = v.RegisterValidation("list_type", func(fl validator.FieldLevel) bool {
		return model.Type(fl.Field().String()).Valid()
	})

	return &structValidator{validate: v}
}

// Validate implements the echo.Validator interface.
func (v *structValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "could not validate parameters")
	}

	typ := reflect.Indirect(reflect.ValueOf(i)).Type()
	messages := make([]string, 0, len(verrs))
	for _, ferr := range verrs {
		messages = append(messages, message(ferr, typ))
	}
	return listerror.InvalidParameters(strings.Join(messages, ", "))
}

func message(ferr validator.FieldError, typ reflect.Type) string {
	switch ferr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", ferr.Field())
	case "required_without":
		return fmt.Sprintf("%s is required when %s is missing", ferr.Field(), paramNames(typ, ferr.Param()))
	case "required_with":
		return fmt.Sprintf("%s is required along with %s", ferr.Field(), paramNames(typ, ferr.Param()))
	case "excluded_with":
		return fmt.Sprintf("%s can't be used along with %s", ferr.Field(), paramNames(typ, ferr.Param()))
	case "list_type":
		return fmt.Sprintf("%s must be one of %v", ferr.Field(), model.Types())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", ferr.Field(), ferr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", ferr.Field(), ferr.Param())
	default:
		return fmt.Sprintf("%s failed on %s", ferr.Field(), ferr.Tag())
	}
}

// requestName returns the name of the field as it appears in the request.
func requestName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// paramNames resolves the struct fields named by a tag param (e.g. "ListID Value") to their request names.
func paramNames(typ reflect.Type, param string) string {
	fields := strings.Fields(param)
	for i, name := range fields {
		if typ.Kind() != reflect.Struct {
			break
		}
		if f, ok := typ.FieldByName(name); ok {
			fields[i] = requestName(f)
		}
	}
	return strings.Join(fields, " or ")
}
