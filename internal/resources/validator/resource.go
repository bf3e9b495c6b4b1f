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

// ValidateHHMM backs the custom "hhmm" struct tag shared by resource and
// booking models.
func ValidateHHMM(fl validator.FieldLevel) bool {
	_, ok := slot.ParseClock(fl.Field().String())
	return ok
}

type ResourceValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewResourceValidator(log *logger.Logger) *ResourceValidator {
	v := validator.New()

	if err := v.RegisterValidation("hhmm", ValidateHHMM); err != nil {
		log.Fatal("Failed to register 'hhmm' validator", "error", err)
	}

	return &ResourceValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ResourceValidator) Validate(resource *model.Resource) error {
	if err := v.validate.Struct(resource); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.ValidateConfig(resource.BookingConfig)
}

// ValidateConfig enforces the cross-field invariants the struct tags cannot
// express: startTime < endTime, and a window wide enough for at least one slot.
func (v *ResourceValidator) ValidateConfig(cfg model.BookingConfig) error {
	start, okStart := slot.ParseClock(cfg.StartTime)
	end, okEnd := slot.ParseClock(cfg.EndTime)
	if !okStart || !okEnd {
		// Struct tags already report the malformed field; nothing to add.
		return nil
	}

	if start >= end {
		return ValidationErrors{
			ValidationError{
				Field:   "BookingConfig.StartTime",
				Message: fmt.Sprintf("startTime (%s) must be before endTime (%s)", cfg.StartTime, cfg.EndTime),
			},
		}
	}

	if end-start < cfg.Duration {
		return ValidationErrors{
			ValidationError{
				Field:   "BookingConfig.Duration",
				Message: fmt.Sprintf("window %s-%s is too short for %d-minute slots", cfg.StartTime, cfg.EndTime, cfg.Duration),
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
