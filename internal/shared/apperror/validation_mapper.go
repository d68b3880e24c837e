package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

func fieldMessage(e validator.FieldError) string {
	field := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidationDetails flattens validator errors into a json-field -> message map.
func ValidationDetails(err error) map[string]string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		out[e.Field()] = fieldMessage(e)
	}
	return out
}

// MapValidationError turns a binding error into an AppError keyed by field.
func MapValidationError(err error) *AppError {
	details := ValidationDetails(err)
	if details == nil {
		return New(CodeValidation, "Invalid input", http.StatusBadRequest).WithDetails(err.Error())
	}
	return New(CodeValidation, "Invalid input", http.StatusBadRequest).WithDetails(details)
}

// FieldErrors builds a validation error from service-side checks.
func FieldErrors(details map[string]string) *AppError {
	return New(CodeValidation, "Invalid input", http.StatusBadRequest).WithDetails(details)
}
