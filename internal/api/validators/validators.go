// Package validators wraps go-playground/validator for request bodies.
package validators

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/patch"
	appErr "github.com/trackr/api/pkg/errors"
)

// New returns a validator that reports fields by their JSON names. Partial
// update fields are validated by their value; absent or null fields are
// skipped by omitempty.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(patchValue[string], patch.Field[string]{})
	v.RegisterCustomTypeFunc(patchValue[models.Role], patch.Field[models.Role]{})
	return v
}

func patchValue[T any](field reflect.Value) any {
	f, ok := field.Interface().(patch.Field[T])
	if !ok || !f.HasValue() {
		return nil
	}
	return f.Value
}

// Struct validates s and converts failures into an invalid AppError whose
// metadata maps each field to the rule it broke.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid request")
	}
	out := appErr.New(appErr.CodeInvalid, "validation failed")
	for _, fe := range fieldErrs {
		out.WithMeta(fe.Field(), describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	}
	return "failed " + fe.Tag()
}
