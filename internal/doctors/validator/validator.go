package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"medibook/pkg/logger"
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

var slotTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type DoctorValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewDoctorValidator(log *logger.Logger) *DoctorValidator {
	v := validator.New()

	if err := v.RegisterValidation("slot_time", validateSlotTime); err != nil {
		log.Fatal("Failed to register 'slot_time' validator", "error", err)
	}

	return &DoctorValidator{
		validate: v,
		logger:   log,
	}
}

func validateSlotTime(fl validator.FieldLevel) bool {
	return slotTimeRegex.MatchString(fl.Field().String())
}

func (v *DoctorValidator) ValidateBooking(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return v.translate(err)
	}
	if !slotTimeRegex.MatchString(req.Time) {
		return ValidationErrors{
			ValidationError{Field: "Time", Message: "time must be in HH:MM format"},
		}
	}
	return nil
}

func (v *DoctorValidator) ValidateCheckIn(req *model.CheckInRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *DoctorValidator) ValidateDoctor(doc *model.Doctor) error {
	if err := v.validate.Struct(doc); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *DoctorValidator) ValidateDepartment(dep *model.Department) error {
	if err := v.validate.Struct(dep); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *DoctorValidator) translate(err error) error {
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
		case "max":
			message = fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", fieldErr.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fieldErr.Field())
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
