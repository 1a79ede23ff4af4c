package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/candystand/CandyBot_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("candytier", validateCandyTier)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError converts validator errors into a per-field map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "candytier":
			errs[field] = "Must be 'normal' or 'super'"
		case "min":
			errs[field] = "Value is too small"
		case "max":
			errs[field] = "Value is too large"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateCandyTier accepts the known candy tiers. Empty values are left to
// the required tag.
func validateCandyTier(fl validator.FieldLevel) bool {
	tier := fl.Field().String()
	if tier == "" {
		return true
	}
	return domain.CandyTier(tier).Valid()
}
