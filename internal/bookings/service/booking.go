package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "bookcal/internal/bookings/errors"
	"bookcal/internal/bookings/repository"
	"bookcal/internal/bookings/validator"
	"bookcal/internal/events"
	resourceserrors "bookcal/internal/resources/errors"
	"bookcal/pkg/config"
	apperrors "bookcal/pkg/errors"
	"bookcal/pkg/model"
	"bookcal/pkg/sanitizer"
)

// ResourceFinder is the slice of the resource registry the booking
// transaction needs.
type ResourceFinder interface {
	FindByResourceID(ctx context.Context, resourceID string) (*model.Resource, error)
}

// CreateBookingRequest carries the caller's input plus the authenticated
// principal resolved by the transport layer.
type CreateBookingRequest struct {
	ResourceID string
	Date       time.Time
	Time       string
	OwnerID    string
	OwnerEmail string
}

// BookingService runs the booking state machine: validate against the
// registry and the slot grid, then commit against the ledger. The conflict
// check is not done here with a read; the ledger's unique constraint decides,
// and a storage-level duplicate surfaces as a slot conflict.
type BookingService interface {
	Create(ctx context.Context, req CreateBookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID string, requester model.Principal) (*model.Booking, error)
	ListConfirmedInRange(ctx context.Context, startDate, endDate time.Time, resourceID string, limit int, offset int64) ([]*model.Booking, error)
	ListFutureForOwner(ctx context.Context, ownerID string, now time.Time) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	resources ResourceFinder
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	resources ResourceFinder,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		resources: resources,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
	req.ResourceID = sanitizer.NormalizeResourceID(req.ResourceID)
	req.OwnerEmail = sanitizer.NormalizeEmail(req.OwnerEmail)

	resource, err := s.resources.FindByResourceID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", req.ResourceID)
		}
		return nil, apperrors.Internal("Failed to look up resource", err)
	}
	if !resource.IsActive {
		return nil, apperrors.NotFoundWithID("Resource", req.ResourceID)
	}

	if err := s.validator.ValidateSlot(req.Time, resource.BookingConfig); err != nil {
		s.cfg.Log.Warn("Rejected booking for invalid slot",
			"resource_id", req.ResourceID,
			"time", req.Time,
			"error", err,
		)
		return nil, apperrors.InvalidInput(err.Error())
	}

	date := model.NormalizeDate(req.Date)

	// Friendly fast path only; the ledger's unique constraint is what
	// actually decides under concurrency.
	if existing, err := s.repo.FindConfirmed(ctx, req.ResourceID, date, req.Time); err == nil && existing != nil {
		return nil, apperrors.Conflict("Time slot is already booked")
	}

	booking := &model.Booking{
		ResourceID:   resource.ResourceID,
		ResourceName: resource.Name, // snapshot, survives resource renames
		OwnerID:      req.OwnerID,
		OwnerEmail:   req.OwnerEmail,
		Date:         date,
		Time:         req.Time,
		Status:       model.BookingStatusConfirmed,
	}

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.InsertConfirmed(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			return nil, apperrors.Conflict("Time slot is already booked")
		}
		s.cfg.Log.Error("Failed to create booking",
			"resource_id", booking.ResourceID,
			"date", booking.Date,
			"time", booking.Time,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"resource_id", booking.ResourceID,
		"date", booking.Date.Format("2006-01-02"),
		"time", booking.Time,
		"owner_id", booking.OwnerID,
	)
	s.publisher.BookingCreated(ctx, booking)

	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID string, requester model.Principal) (*model.Booking, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	// The owner check and the status flip run in one transaction so the
	// booking read here is the booking written below.
	var cancelled *model.Booking
	var changed bool
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		booking, err := s.repo.FindByID(sessCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", bookingID)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to retrieve booking", err)
		}

		if booking.OwnerID != requester.UserID {
			return apperrors.Forbidden("You can only cancel your own bookings")
		}

		// Repeat cancels are idempotent: return the booking unchanged.
		if booking.Status == model.BookingStatusCancelled {
			cancelled = booking
			return nil
		}

		updated, err := s.repo.UpdateStatus(sessCtx, bookingID, model.BookingStatusCancelled)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", bookingID)
			}
			return apperrors.Internal("Failed to cancel booking", err)
		}
		cancelled = updated
		changed = true
		return nil
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			s.cfg.Log.Error("Failed to cancel booking", "id", bookingID, "error", err)
			return nil, apperrors.Internal("Failed to cancel booking", err)
		}
		return nil, err
	}

	// Repeat cancel committed nothing, so there is nothing to publish.
	if !changed {
		return cancelled, nil
	}

	s.cfg.Log.Info("Booking cancelled", "id", bookingID, "owner_id", requester.UserID)
	s.publisher.BookingCancelled(ctx, cancelled)

	return cancelled, nil
}

func (s *bookingService) ListConfirmedInRange(ctx context.Context, startDate, endDate time.Time, resourceID string, limit int, offset int64) ([]*model.Booking, error) {
	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		return nil, apperrors.InvalidInput("endDate must not be before startDate")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindConfirmedInRange(ctx, startDate, endDate, sanitizer.NormalizeResourceID(resourceID), limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings in range", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListFutureForOwner(ctx context.Context, ownerID string, now time.Time) ([]*model.Booking, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	bookings, err := s.repo.FindFutureByOwner(ctx, ownerID, now)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for owner", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}
