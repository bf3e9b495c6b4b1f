package service

import (
	"context"
	"errors"
	"time"

	"bookcal/internal/bookings/repository"
	resourceserrors "bookcal/internal/resources/errors"
	"bookcal/pkg/config"
	apperrors "bookcal/pkg/errors"
	"bookcal/pkg/model"
	"bookcal/pkg/sanitizer"
	"bookcal/pkg/slot"
)

// ResourceFinder is the slice of the resource registry the engine needs.
type ResourceFinder interface {
	FindByResourceID(ctx context.Context, resourceID string) (*model.Resource, error)
}

// SlotBooking is the occupancy attached to a slot. Cancelled bookings appear
// here as history but never make a slot unavailable.
type SlotBooking struct {
	ID         string `json:"id"`
	OwnerID    string `json:"ownerId"`
	OwnerEmail string `json:"ownerEmail"`
	Status     string `json:"status"`
}

type SlotStatus struct {
	Time        string       `json:"time"`
	IsAvailable bool         `json:"isAvailable"`
	Booking     *SlotBooking `json:"booking,omitempty"`
}

type ResourceSummary struct {
	ResourceID    string              `json:"resourceId"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	BookingConfig model.BookingConfig `json:"bookingConfig"`
}

type DayAvailability struct {
	Resource     ResourceSummary `json:"resource"`
	Date         string          `json:"date"`
	Availability []SlotStatus    `json:"availability"`
}

// AvailabilityService answers "which slots of resource R on date D are free,
// which are taken, and by whom". Strictly read-only: it composes the slot
// grid with the day's ledger entries and never writes.
type AvailabilityService interface {
	ComputeDay(ctx context.Context, resourceID string, date time.Time) (*DayAvailability, error)
}

type availabilityService struct {
	resources ResourceFinder
	bookings  repository.BookingRepository
	cfg       *config.Config
}

func NewAvailabilityService(
	resources ResourceFinder,
	bookings repository.BookingRepository,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		resources: resources,
		bookings:  bookings,
		cfg:       cfg,
	}
}

func (s *availabilityService) ComputeDay(ctx context.Context, resourceID string, date time.Time) (*DayAvailability, error) {
	resourceID = sanitizer.NormalizeResourceID(resourceID)
	if resourceID == "" {
		return nil, apperrors.InvalidInput("Resource id cannot be empty")
	}
	if date.IsZero() {
		return nil, apperrors.InvalidInput("Date is required")
	}
	date = model.NormalizeDate(date)

	resource, err := s.resources.FindByResourceID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", resourceID)
		}
		return nil, apperrors.Internal("Failed to look up resource", err)
	}
	if !resource.IsActive {
		return nil, apperrors.NotFoundWithID("Resource", resourceID)
	}

	dayBookings, err := s.bookings.FindByResourceAndDate(ctx, resourceID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for availability",
			"resource_id", resourceID,
			"date", date.Format("2006-01-02"),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to compute availability", err)
	}

	// Confirmed occupancy wins the slot; otherwise the latest entry (the
	// sole cancelled one in practice) is shown as history.
	confirmed := make(map[string]*model.Booking)
	history := make(map[string]*model.Booking)
	for _, b := range dayBookings {
		if b.Status == model.BookingStatusConfirmed {
			confirmed[b.Time] = b
		} else {
			history[b.Time] = b
		}
	}

	grid := slot.GenerateFor(resource.BookingConfig)
	availability := make([]SlotStatus, 0, len(grid))
	for _, t := range grid {
		status := SlotStatus{Time: t, IsAvailable: true}

		if b, ok := confirmed[t]; ok {
			status.IsAvailable = false
			status.Booking = toSlotBooking(b)
		} else if b, ok := history[t]; ok {
			status.Booking = toSlotBooking(b)
		}

		availability = append(availability, status)
	}

	return &DayAvailability{
		Resource: ResourceSummary{
			ResourceID:    resource.ResourceID,
			Name:          resource.Name,
			Description:   resource.Description,
			BookingConfig: resource.BookingConfig,
		},
		Date:         date.Format("2006-01-02"),
		Availability: availability,
	}, nil
}

func toSlotBooking(b *model.Booking) *SlotBooking {
	return &SlotBooking{
		ID:         b.ID,
		OwnerID:    b.OwnerID,
		OwnerEmail: b.OwnerEmail,
		Status:     b.Status,
	}
}
