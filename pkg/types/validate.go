package types

import "github.com/go-playground/validator/v10"

// validate is the shared validator instance for form inputs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs struct-tag validation and converts the first failure
// into a *ValidationError so callers can discriminate with errors.Is.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return &ValidationError{
			Field:  fieldErrs[0].Field(),
			Reason: fieldErrs[0].Tag(),
		}
	}
	return &ValidationError{Field: "", Reason: err.Error()}
}
