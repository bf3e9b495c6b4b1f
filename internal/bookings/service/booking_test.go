package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "bookcal/internal/bookings/errors"
	"bookcal/internal/bookings/validator"
	resourceserrors "bookcal/internal/resources/errors"
	"bookcal/pkg/config"
	mongotx "bookcal/pkg/db/mongo"
	apperrors "bookcal/pkg/errors"
	"bookcal/pkg/logger"
	"bookcal/pkg/model"
)

// Mock booking repository with per-method function fields
type mockBookingRepository struct {
	insertConfirmedFunc func(ctx context.Context, booking *model.Booking) error
	findByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	updateStatusFunc    func(ctx context.Context, id string, status string) (*model.Booking, error)
	capturedBooking     *model.Booking // Capture inserted booking for verification
}

func (m *mockBookingRepository) InsertConfirmed(ctx context.Context, booking *model.Booking) error {
	m.capturedBooking = booking
	if m.insertConfirmedFunc != nil {
		return m.insertConfirmedFunc(ctx, booking)
	}
	booking.ID = "507f1f77bcf86cd799439011"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindConfirmed(ctx context.Context, resourceID string, date time.Time, slotTime string) (*model.Booking, error) {
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByResourceAndDate(ctx context.Context, resourceID string, date time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindConfirmedInRange(ctx context.Context, startDate, endDate time.Time, resourceID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindFutureByOwner(ctx context.Context, ownerID string, now time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	// Execute the function with a fake session context
	sessCtx := mongo.NewSessionContext(ctx, nil)
	return fn(sessCtx)
}

type mockResourceFinder struct {
	findFunc func(ctx context.Context, resourceID string) (*model.Resource, error)
}

func (m *mockResourceFinder) FindByResourceID(ctx context.Context, resourceID string) (*model.Resource, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, resourceID)
	}
	return nil, resourceserrors.ErrNotFound
}

type nopPublisher struct{}

func (nopPublisher) BookingCreated(ctx context.Context, booking *model.Booking)   {}
func (nopPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {}
func (nopPublisher) Close() error                                                 { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func testResource() *model.Resource {
	return &model.Resource{
		ID:          "507f1f77bcf86cd799439021",
		ResourceID:  "room-2",
		Name:        "Meeting Room 2",
		Description: "Small meeting room",
		IsActive:    true,
		BookingConfig: model.BookingConfig{
			Duration:  30,
			StartTime: "09:00",
			EndTime:   "17:00",
		},
	}
}

func newTestService(repo *mockBookingRepository, finder *mockResourceFinder) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, finder, validator.NewBookingValidator(cfg.Log), nopPublisher{}, cfg)
}

func TestCreate_Success(t *testing.T) {
	resource := testResource()
	repo := &mockBookingRepository{}
	finder := &mockResourceFinder{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			return resource, nil
		},
	}

	svc := newTestService(repo, finder)

	booking, err := svc.Create(context.Background(), CreateBookingRequest{
		ResourceID: "room-2",
		Date:       time.Date(2024, 6, 10, 15, 30, 0, 0, time.FixedZone("IST", 2*3600)),
		Time:       "09:00",
		OwnerID:    "user-1",
		OwnerEmail: "Alice@Example.com",
	})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if booking.Status != model.BookingStatusConfirmed {
		t.Errorf("expected status confirmed, got %s", booking.Status)
	}
	if booking.ResourceName != "Meeting Room 2" {
		t.Errorf("expected denormalized resource name, got %q", booking.ResourceName)
	}
	if booking.OwnerEmail != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", booking.OwnerEmail)
	}

	// Date must be truncated to midnight UTC regardless of the caller's zone
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if !booking.Date.Equal(want) {
		t.Errorf("expected date %v, got %v", want, booking.Date)
	}
	if repo.capturedBooking == nil {
		t.Fatal("expected booking to reach the repository")
	}
}

func TestCreate_ResourceNotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockResourceFinder{})

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		ResourceID: "no-such-room",
		Date:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:       "09:00",
		OwnerID:    "user-1",
		OwnerEmail: "alice@example.com",
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCreate_InactiveResourceNotFound(t *testing.T) {
	resource := testResource()
	resource.IsActive = false
	finder := &mockResourceFinder{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			return resource, nil
		},
	}

	svc := newTestService(&mockBookingRepository{}, finder)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		ResourceID: "room-2",
		Date:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:       "09:00",
		OwnerID:    "user-1",
		OwnerEmail: "alice@example.com",
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for inactive resource, got %v", err)
	}
}

func TestCreate_InvalidSlotRejected(t *testing.T) {
	resource := testResource()
	repo := &mockBookingRepository{}
	finder := &mockResourceFinder{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			return resource, nil
		},
	}

	svc := newTestService(repo, finder)

	cases := []string{
		"09:15", // off-grid for a 30 minute duration
		"17:00", // end time itself is never a slot
		"08:30", // before opening
		"9:00",  // not zero padded
		"banana",
	}
	for _, slotTime := range cases {
		t.Run(slotTime, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateBookingRequest{
				ResourceID: "room-2",
				Date:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
				Time:       slotTime,
				OwnerID:    "user-1",
				OwnerEmail: "alice@example.com",
			})
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeInvalidInput {
				t.Fatalf("expected INVALID_INPUT for %q, got %v", slotTime, err)
			}
		})
	}

	if repo.capturedBooking != nil {
		t.Error("invalid slots must never reach the repository")
	}
}

func TestCreate_SlotConflict(t *testing.T) {
	resource := testResource()
	repo := &mockBookingRepository{
		insertConfirmedFunc: func(ctx context.Context, booking *model.Booking) error {
			return bookingserrors.ErrSlotTaken
		},
	}
	finder := &mockResourceFinder{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			return resource, nil
		},
	}

	svc := newTestService(repo, finder)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		ResourceID: "room-2",
		Date:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:       "09:00",
		OwnerID:    "user-1",
		OwnerEmail: "alice@example.com",
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	if appErr.Message != "Time slot is already booked" {
		t.Errorf("conflict must be distinguishable from a generic failure, got %q", appErr.Message)
	}
}

// uniqueLedger imitates the storage constraint: one confirmed booking per
// (resource, date, time), enforced under a single mutex so concurrent
// inserts race exactly like they would against the unique index.
type uniqueLedger struct {
	mockBookingRepository
	mu    sync.Mutex
	taken map[string]bool
}

func (l *uniqueLedger) InsertConfirmed(ctx context.Context, booking *model.Booking) error {
	key := fmt.Sprintf("%s|%s|%s", booking.ResourceID, booking.Date.Format("2006-01-02"), booking.Time)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.taken[key] {
		return bookingserrors.ErrSlotTaken
	}
	l.taken[key] = true
	booking.ID = "507f1f77bcf86cd799439011"
	return nil
}

func TestCreate_ConcurrentIdenticalRequests_ExactlyOneWins(t *testing.T) {
	resource := testResource()
	ledger := &uniqueLedger{taken: make(map[string]bool)}
	finder := &mockResourceFinder{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			return resource, nil
		},
	}

	cfg := testConfig()
	svc := NewBookingService(ledger, finder, validator.NewBookingValidator(cfg.Log), nopPublisher{}, cfg)

	const n = 32
	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(owner int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), CreateBookingRequest{
				ResourceID: "room-2",
				Date:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
				Time:       "09:00",
				OwnerID:    fmt.Sprintf("user-%d", owner),
				OwnerEmail: fmt.Sprintf("user%d@example.com", owner),
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeConflict {
			t.Fatalf("unexpected error under contention: %v", err)
		}
		conflicts++
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if conflicts != n-1 {
		t.Errorf("expected %d conflicts, got %d", n-1, conflicts)
	}
}

func TestCreate_CancelledSlotCanBeRebooked(t *testing.T) {
	resource := testResource()
	ledger := &uniqueLedger{taken: make(map[string]bool)}
	finder := &mockResourceFinder{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			return resource, nil
		},
	}

	cfg := testConfig()
	svc := NewBookingService(ledger, finder, validator.NewBookingValidator(cfg.Log), nopPublisher{}, cfg)

	req := CreateBookingRequest{
		ResourceID: "room-2",
		Date:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:       "10:30",
		OwnerID:    "user-1",
		OwnerEmail: "alice@example.com",
	}

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Release the slot the way a cancel would: the constraint only covers
	// confirmed documents.
	ledger.mu.Lock()
	ledger.taken["room-2|2024-06-10|10:30"] = false
	ledger.mu.Unlock()

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("create after cancel failed: %v", err)
	}
}

func TestCancel_OwnerScoped(t *testing.T) {
	existing := &model.Booking{
		ID:           "507f1f77bcf86cd799439011",
		ResourceID:   "room-2",
		ResourceName: "Meeting Room 2",
		OwnerID:      "user-1",
		OwnerEmail:   "alice@example.com",
		Date:         time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Time:         "09:00",
		Status:       model.BookingStatusConfirmed,
	}

	updateCalled := false
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return existing, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status string) (*model.Booking, error) {
			updateCalled = true
			updated := *existing
			updated.Status = status
			return &updated, nil
		},
	}

	svc := newTestService(repo, &mockResourceFinder{})

	_, err := svc.Cancel(context.Background(), existing.ID, model.Principal{UserID: "user-2"})
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN for non-owner, got %v", err)
	}
	if updateCalled {
		t.Error("a forbidden cancel must not touch the ledger")
	}

	cancelled, err := svc.Cancel(context.Background(), existing.ID, model.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatalf("owner cancel failed: %v", err)
	}
	if cancelled.Status != model.BookingStatusCancelled {
		t.Errorf("expected cancelled status, got %s", cancelled.Status)
	}
}

func TestCancel_AlreadyCancelledIsIdempotent(t *testing.T) {
	existing := &model.Booking{
		ID:      "507f1f77bcf86cd799439011",
		OwnerID: "user-1",
		Status:  model.BookingStatusCancelled,
	}

	updateCalled := false
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return existing, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status string) (*model.Booking, error) {
			updateCalled = true
			return existing, nil
		},
	}

	svc := newTestService(repo, &mockResourceFinder{})

	booking, err := svc.Cancel(context.Background(), existing.ID, model.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatalf("repeat cancel must succeed, got %v", err)
	}
	if booking.Status != model.BookingStatusCancelled {
		t.Errorf("expected cancelled status, got %s", booking.Status)
	}
	if updateCalled {
		t.Error("repeat cancel must not rewrite the booking")
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockResourceFinder{})

	_, err := svc.Cancel(context.Background(), "507f1f77bcf86cd799439099", model.Principal{UserID: "user-1"})
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListConfirmedInRange_RejectsInvertedRange(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockResourceFinder{})

	_, err := svc.ListConfirmedInRange(context.Background(),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		"", 0, 0,
	)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
