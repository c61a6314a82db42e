package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/goddivor/Orinu-hub/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with the catalog and form rules.
// It satisfies echo.Validator.
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules.
func New() *Validator {
	validate := validator.New()

	registerCustomValidators(validate)

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validator: validate}
}

// Validate validates a struct and returns a *ValidationError on failure.
func (v *Validator) Validate(i interface{}) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return NewValidationError(errs)
	}
	return err
}

// ValidateVar validates a single variable.
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}

// ValidationError carries one user-facing message per invalid field.
// It matches domain.ErrInvalidInput.
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "validation failed: " + strings.Join(messages, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// First returns the message of the first invalid field in alphabetical order.
func (e *ValidationError) First() string {
	first := ""
	for field := range e.Errors {
		if first == "" || field < first {
			first = field
		}
	}
	return e.Errors[first]
}

// NewValidationError creates a ValidationError from validator.ValidationErrors.
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	messages := make(map[string]string, len(errs))

	for _, err := range errs {
		field := err.Field()

		switch err.Tag() {
		case "required":
			messages[field] = fmt.Sprintf("%s est requis", field)
		case "email":
			messages[field] = domain.MsgInvalidEmail
		case "min":
			if field == "password" {
				messages[field] = domain.MsgWeakPassword
			} else {
				messages[field] = fmt.Sprintf("%s doit contenir au moins %s caractères", field, err.Param())
			}
		case "max":
			messages[field] = fmt.Sprintf("%s doit contenir au plus %s caractères", field, err.Param())
		case "url":
			messages[field] = fmt.Sprintf("%s doit être une URL valide", field)
		case "orinu_category":
			messages[field] = fmt.Sprintf("catégorie inconnue: %v", err.Value())
		case "publish_day":
			messages[field] = fmt.Sprintf("jour de publication inconnu: %v", err.Value())
		default:
			messages[field] = fmt.Sprintf("%s est invalide", field)
		}
	}

	return &ValidationError{Errors: messages}
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("orinu_category", func(fl validator.FieldLevel) bool {
		c, err := domain.ParseCategory(fl.Field().String())
		return err == nil && c != domain.CategoryAll
	})

	validate.RegisterValidation("publish_day", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePublishDay(fl.Field().String())
		return err == nil
	})
}
