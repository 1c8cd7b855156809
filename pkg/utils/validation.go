package utils

import (
	"fmt"
	"strings"
	"sync"

	"careergraph/domain/core/valueobjects"
	apperrors "careergraph/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("perioddate", func(fl validator.FieldLevel) bool {
			return valueobjects.ParsePeriodDate(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("attribute", func(fl validator.FieldLevel) bool {
			_, err := valueobjects.ParseAttribute(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidateStruct validates a struct based on its validation tags and
// returns a VALIDATION AppError listing every failed field.
func ValidateStruct(s interface{}) error {
	if err := validatorInstance().Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	fields := make(map[string]interface{}, len(validationErrors))
	for _, e := range validationErrors {
		msg := formatFieldError(e)
		messages = append(messages, msg)
		fields[toSnake(e.Field())] = msg
	}
	return apperrors.NewValidationError(strings.Join(messages, "; ")).
		WithDetails(map[string]interface{}{"fields": fields})
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := toSnake(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "perioddate":
		return fmt.Sprintf("%s must be a date such as 2006-01-02", field)
	case "attribute":
		return fmt.Sprintf("%s must be one of: allotment_year, domicile_place", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
