package validator

import (
	"testing"

	"bookcal/pkg/logger"
	"bookcal/pkg/model"
)

func newTestValidator() *ResourceValidator {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	return NewResourceValidator(log)
}

func validResource() *model.Resource {
	return &model.Resource{
		ResourceID:  "room-1",
		Name:        "Meeting Room 1",
		Description: "Main conference room",
		IsActive:    true,
		BookingConfig: model.BookingConfig{
			Duration:  60,
			StartTime: "09:00",
			EndTime:   "17:00",
		},
	}
}

func TestValidate_OK(t *testing.T) {
	v := newTestValidator()
	if err := v.Validate(validResource()); err != nil {
		t.Errorf("expected valid resource, got %v", err)
	}
}

func TestValidate_ConfigBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Resource)
	}{
		{"duration below minimum", func(r *model.Resource) { r.BookingConfig.Duration = 10 }},
		{"duration above maximum", func(r *model.Resource) { r.BookingConfig.Duration = 481 }},
		{"malformed start time", func(r *model.Resource) { r.BookingConfig.StartTime = "9:00" }},
		{"malformed end time", func(r *model.Resource) { r.BookingConfig.EndTime = "17:60" }},
		{"start after end", func(r *model.Resource) { r.BookingConfig.StartTime = "18:00" }},
		{"start equals end", func(r *model.Resource) {
			r.BookingConfig.StartTime = "09:00"
			r.BookingConfig.EndTime = "09:00"
		}},
		{"window shorter than one slot", func(r *model.Resource) {
			r.BookingConfig.Duration = 120
			r.BookingConfig.StartTime = "09:00"
			r.BookingConfig.EndTime = "10:00"
		}},
		{"missing name", func(r *model.Resource) { r.Name = "" }},
		{"resource id too short", func(r *model.Resource) { r.ResourceID = "r" }},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResource()
			tt.mutate(r)
			if err := v.Validate(r); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidate_BoundaryDurations(t *testing.T) {
	v := newTestValidator()

	r := validResource()
	r.BookingConfig.Duration = 15
	if err := v.Validate(r); err != nil {
		t.Errorf("15-minute slots must be allowed, got %v", err)
	}

	r = validResource()
	r.BookingConfig.Duration = 480
	r.BookingConfig.StartTime = "08:00"
	r.BookingConfig.EndTime = "16:00"
	if err := v.Validate(r); err != nil {
		t.Errorf("480-minute slots must be allowed, got %v", err)
	}
}
