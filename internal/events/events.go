package events

import (
	"time"

	"bookcal/pkg/model"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload published after a committed ledger write.
// Consumers (notification fan-out, audit) are outside this service.
type BookingEvent struct {
	EventID      string    `json:"event_id"`
	Type         string    `json:"type"`
	BookingID    string    `json:"booking_id"`
	ResourceID   string    `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	OwnerID      string    `json:"owner_id"`
	OwnerEmail   string    `json:"owner_email"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func newBookingEvent(eventType, eventID string, b *model.Booking) BookingEvent {
	return BookingEvent{
		EventID:      eventID,
		Type:         eventType,
		BookingID:    b.ID,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		OwnerID:      b.OwnerID,
		OwnerEmail:   b.OwnerEmail,
		Date:         b.Date.Format("2006-01-02"),
		Time:         b.Time,
		Status:       b.Status,
		OccurredAt:   time.Now().UTC(),
	}
}
