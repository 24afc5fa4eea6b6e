// Package validation normalizes untrusted input into typed records and
// rejects malformed input with field-level errors before it reaches the
// business logic.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "pressroom/internal/errors"
)

// Validator wraps validator/v10 and implements echo.Validator. Violations are
// reported as field-level errors carrying the offending field path and a
// human-readable message.
type Validator struct {
	validate *validator.Validate
}

// New builds the request validator with the password-strength rule registered.
func New() *Validator {
	v := validator.New()

	// Report fields by their json name, not the Go struct field.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("password", validPassword); err != nil {
		panic(err)
	}

	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return &apperrors.ValidationError{Fields: fields}
}

// validPassword requires at least one lowercase letter, one uppercase letter
// and one digit.
func validPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func message(fe validator.FieldError) string {
	field := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "password":
		return "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func label(field string) string {
	if field == "" {
		return "field"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
