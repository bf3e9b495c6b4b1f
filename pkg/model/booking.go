package model

import "time"

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking reserves one slot of one resource on one date for one principal.
// ResourceName is a snapshot of the resource name at creation time and
// survives later renames. Date is day-granular: always midnight UTC.
//
// At most one confirmed booking may exist per (resource_id, date, time);
// the ledger enforces this with a unique partial index, not application code.
type Booking struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID   string    `json:"resourceId" bson:"resource_id" validate:"required,min=2,max=64"`
	ResourceName string    `json:"resourceName" bson:"resource_name"`
	OwnerID      string    `json:"ownerId" bson:"owner_id" validate:"required"`
	OwnerEmail   string    `json:"ownerEmail" bson:"owner_email" validate:"required,email"`
	Date         time.Time `json:"date" bson:"date" validate:"required"`
	Time         string    `json:"time" bson:"time" validate:"required,hhmm"`
	Status       string    `json:"status" bson:"status" validate:"required,oneof=confirmed cancelled"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" bson:"updated_at"`
}

// NormalizeDate truncates a timestamp to midnight UTC. Every read and write
// against the ledger goes through this so that a booking made at
// "2024-06-10T09:30:00+02:00" and a query for "2024-06-10" hit the same key.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
