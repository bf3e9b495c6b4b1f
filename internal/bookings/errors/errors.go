package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotTaken is returned when the unique (resource_id, date, time)
	// constraint on confirmed bookings rejects an insert.
	ErrSlotTaken = errors.New("time slot is already booked")
)
