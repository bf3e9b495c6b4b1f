package service

import (
	"context"
	"testing"
	"time"

	resourceserrors "bookcal/internal/resources/errors"
	"bookcal/internal/resources/validator"
	"bookcal/pkg/config"
	apperrors "bookcal/pkg/errors"
	"bookcal/pkg/logger"
	"bookcal/pkg/model"
)

type mockResourceRepository struct {
	createFunc       func(ctx context.Context, resource *model.Resource) error
	findFunc         func(ctx context.Context, resourceID string) (*model.Resource, error)
	findActiveFunc   func(ctx context.Context) ([]*model.Resource, error)
	updateFunc       func(ctx context.Context, resourceID string, resource *model.Resource) error
	capturedResource *model.Resource // Capture last write for verification
}

func (m *mockResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	m.capturedResource = resource
	if m.createFunc != nil {
		return m.createFunc(ctx, resource)
	}
	return nil
}

func (m *mockResourceRepository) FindByResourceID(ctx context.Context, resourceID string) (*model.Resource, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, resourceID)
	}
	return nil, resourceserrors.ErrNotFound
}

func (m *mockResourceRepository) FindActive(ctx context.Context) ([]*model.Resource, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockResourceRepository) Update(ctx context.Context, resourceID string, resource *model.Resource) error {
	m.capturedResource = resource
	if m.updateFunc != nil {
		return m.updateFunc(ctx, resourceID, resource)
	}
	return nil
}

func newTestService(repo *mockResourceRepository) ResourceService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	cfg := &config.Config{Log: log}
	return NewResourceService(repo, validator.NewResourceValidator(log), cfg)
}

func validResource() *model.Resource {
	return &model.Resource{
		ResourceID:  "room-1",
		Name:        "Meeting Room 1",
		Description: "Main conference room",
		BookingConfig: model.BookingConfig{
			Duration:  60,
			StartTime: "09:00",
			EndTime:   "17:00",
		},
	}
}

func TestCreate_ActivatesAndSanitizes(t *testing.T) {
	repo := &mockResourceRepository{}
	svc := newTestService(repo)

	resource := validResource()
	resource.ResourceID = "  Room-1 "
	resource.Name = "  Meeting   Room 1 "

	if err := svc.Create(context.Background(), resource); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if !resource.IsActive {
		t.Error("new resources must be created active")
	}
	if resource.ResourceID != "room-1" {
		t.Errorf("expected normalized resource id, got %q", resource.ResourceID)
	}
	if resource.Name != "Meeting Room 1" {
		t.Errorf("expected collapsed whitespace in name, got %q", resource.Name)
	}
	if repo.capturedResource == nil {
		t.Fatal("expected resource to reach the repository")
	}
}

func TestCreate_InvalidConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *model.Resource)
	}{
		{"duration below minimum", func(r *model.Resource) { r.BookingConfig.Duration = 10 }},
		{"duration above maximum", func(r *model.Resource) { r.BookingConfig.Duration = 600 }},
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
		{"malformed start time", func(r *model.Resource) { r.BookingConfig.StartTime = "9am" }},
		{"missing name", func(r *model.Resource) { r.Name = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockResourceRepository{}
			svc := newTestService(repo)

			resource := validResource()
			tc.mutate(resource)

			err := svc.Create(context.Background(), resource)
			appErr := apperrors.AsAppError(err)
			if err == nil || appErr.Code != apperrors.CodeValidation {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
			if repo.capturedResource != nil {
				t.Error("invalid resources must never reach the repository")
			}
		})
	}
}

func TestCreate_DuplicateResourceID(t *testing.T) {
	repo := &mockResourceRepository{
		createFunc: func(ctx context.Context, resource *model.Resource) error {
			return resourceserrors.ErrDuplicateResourceID
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), validResource())
	appErr := apperrors.AsAppError(err)
	if err == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestUpdate_MergesPartialChanges(t *testing.T) {
	existing := validResource()
	existing.IsActive = true
	existing.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := &mockResourceRepository{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			r := *existing
			return &r, nil
		},
	}
	svc := newTestService(repo)

	newConfig := model.BookingConfig{Duration: 30, StartTime: "08:00", EndTime: "18:00"}
	updated, err := svc.Update(context.Background(), "room-1", &model.ResourceUpdate{
		BookingConfig: &newConfig,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if updated.BookingConfig != newConfig {
		t.Errorf("expected new booking config, got %+v", updated.BookingConfig)
	}
	if updated.Name != existing.Name {
		t.Errorf("untouched fields must survive the merge, got name %q", updated.Name)
	}
	if !updated.IsActive {
		t.Error("untouched IsActive must survive the merge")
	}
}

func TestUpdate_RejectsInvalidMergedConfig(t *testing.T) {
	existing := validResource()
	repo := &mockResourceRepository{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			r := *existing
			return &r, nil
		},
	}
	svc := newTestService(repo)

	bad := model.BookingConfig{Duration: 60, StartTime: "17:00", EndTime: "09:00"}
	_, err := svc.Update(context.Background(), "room-1", &model.ResourceUpdate{BookingConfig: &bad})
	appErr := apperrors.AsAppError(err)
	if err == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestGetByResourceID_NotFound(t *testing.T) {
	svc := newTestService(&mockResourceRepository{})

	_, err := svc.GetByResourceID(context.Background(), "no-such-room")
	appErr := apperrors.AsAppError(err)
	if err == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeactivate_FlipsActiveFlag(t *testing.T) {
	existing := validResource()
	existing.IsActive = true

	repo := &mockResourceRepository{
		findFunc: func(ctx context.Context, resourceID string) (*model.Resource, error) {
			r := *existing
			return &r, nil
		},
	}
	svc := newTestService(repo)

	updated, err := svc.Deactivate(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if updated.IsActive {
		t.Error("expected resource to be inactive after deactivation")
	}
	if repo.capturedResource == nil || repo.capturedResource.IsActive {
		t.Error("deactivation must be persisted")
	}
}
