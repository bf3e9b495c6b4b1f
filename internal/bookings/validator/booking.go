package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookcal/pkg/logger"
	"bookcal/pkg/model"
	"bookcal/pkg/slot"
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
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, ok := slot.ParseClock(fl.Field().String())
		return ok
	}); err != nil {
		log.Fatal("Failed to register 'hhmm' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// Validate checks the structural invariants of a booking. Slot membership
// against the resource's grid is the service's pre-commit step; uniqueness
// belongs to the ledger's storage constraint.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if booking.Date.IsZero() {
		return ValidationErrors{
			ValidationError{Field: "Date", Message: "date is required"},
		}
	}

	return nil
}

// ValidateSlot is the pre-commit membership check: the requested time must
// be a slot of the resource's grid.
func (v *BookingValidator) ValidateSlot(slotTime string, cfg model.BookingConfig) error {
	if !slot.IsValid(slotTime, cfg) {
		return ValidationErrors{
			ValidationError{
				Field: "Time",
				Message: fmt.Sprintf("%s is not a valid time slot. Must be between %s and %s with %d minute intervals",
					slotTime, cfg.StartTime, cfg.EndTime, cfg.Duration),
			},
		}
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "hhmm":
			message = fmt.Sprintf("%s must be a zero-padded 24h HH:MM time", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
