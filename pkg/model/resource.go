package model

import "time"

// BookingConfig describes the bookable window of a resource's day.
// Slots of Duration minutes start at StartTime and repeat while they
// begin before EndTime.
type BookingConfig struct {
	Duration  int    `json:"duration" bson:"duration" validate:"required,min=15,max=480"`
	StartTime string `json:"startTime" bson:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"endTime" bson:"end_time" validate:"required,hhmm"`
}

// Resource is a bookable entity (room, projector). ResourceID is the stable
// public key; the Mongo _id is internal only. Resources are deactivated,
// never deleted, so historical bookings keep a valid reference.
type Resource struct {
	ID            string        `json:"-" bson:"_id,omitempty"`
	ResourceID    string        `json:"resourceId" bson:"resource_id" validate:"required,min=2,max=64"`
	Name          string        `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description   string        `json:"description" bson:"description" validate:"max=500"`
	IsActive      bool          `json:"isActive" bson:"is_active"`
	BookingConfig BookingConfig `json:"bookingConfig" bson:"booking_config" validate:"required"`
	CreatedAt     time.Time     `json:"createdAt,omitempty" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty" bson:"updated_at"`
}

type ResourceUpdate struct {
	Name          string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description   *string        `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive      *bool          `json:"isActive,omitempty"`
	BookingConfig *BookingConfig `json:"bookingConfig,omitempty" validate:"omitempty"`
}
