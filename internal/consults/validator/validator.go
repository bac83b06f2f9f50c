package validator

import (
	"errors"
	"fmt"
	"strings"

	"medibook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

type ConsultValidator struct {
	validate *validator.Validate
}

func NewConsultValidator() *ConsultValidator {
	return &ConsultValidator{validate: validator.New()}
}

func (v *ConsultValidator) ValidateConsult(c *model.Consult) error {
	if err := v.validate.Struct(c); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *ConsultValidator) translate(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var translated ValidationErrors
	for _, fieldErr := range validationErrs {
		message := fieldErr.Error()

		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldErr.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", fieldErr.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
		}

		translated = append(translated, ValidationError{
			Field:   fieldErr.Field(),
			Message: message,
		})
	}
	return translated
}
