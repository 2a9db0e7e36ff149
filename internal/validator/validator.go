package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tygart-labs/employee-portal-service/internal/models"
)

// Validator wraps the struct validator used for request DTOs.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	validate := validator.New()

	validate.RegisterValidation("lookup_collection", func(fl validator.FieldLevel) bool {
		return models.LookupCollection(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("sort_dir", func(fl validator.FieldLevel) bool {
		dir := fl.Field().String()
		return dir == "" || dir == "asc" || dir == "desc"
	})

	return &Validator{validate: validate}
}

// Validate runs tag validation on s and returns ValidationErrors, or
// nil when the struct is valid.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// ToValidationErrors converts validator/v10 errors into the service's
// error shape. Non-field errors come back as a single generic entry.
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{Field: "request", Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "lookup_collection":
		return "must be a known lookup collection"
	case "sort_dir":
		return "must be asc or desc"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", fe.Tag())
	}
}
