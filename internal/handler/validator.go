package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/DegenBox_Go/internal/ledger"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator initializes the global validator with the custom rules
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("identity", validateIdentity)
	_ = v.RegisterValidation("account", validateAccount)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	validateOnce.Do(func() {
		if validate == nil {
			InitValidator()
		}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a field -> message map
// without leaking internal struct names
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
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "identity":
			errs[field] = "Contains invalid characters"
		case "account":
			errs[field] = "Unknown ledger account"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateIdentity accepts printable identities without whitespace
func validateIdentity(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" || len(id) > MaxIdentityLength {
		return false
	}
	for _, r := range id {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// validateAccount accepts the textual ledger account forms
func validateAccount(fl validator.FieldLevel) bool {
	_, err := ledger.ParseAccount(fl.Field().String())
	return err == nil
}
