// Package validator wraps go-playground/validator for the scheduling API's
// request DTOs: booking, edit and availability payloads carry `validate` tags
// (required fields, reason length caps, the batch date-list size bounds), and
// FormatValidationErrors turns violations into the field→message map the
// response envelope returns.
package validator

import (
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				// min/max bound string lengths and list sizes alike (e.g. the
				// batch availability date list).
				errors[field] = field + " must have at least " + e.Param() + " characters or items"
			case "max":
				errors[field] = field + " must have at most " + e.Param() + " characters or items"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
