package service

import (
	"context"
	"errors"

	resourceserrors "bookcal/internal/resources/errors"
	"bookcal/internal/resources/repository"
	"bookcal/internal/resources/validator"
	"bookcal/pkg/config"
	apperrors "bookcal/pkg/errors"
	"bookcal/pkg/model"
	"bookcal/pkg/sanitizer"
)

// ResourceService is the registry of bookable resources. Administrative
// writes validate the booking config bounds; reads are plain lookups.
type ResourceService interface {
	Create(ctx context.Context, resource *model.Resource) error
	GetByResourceID(ctx context.Context, resourceID string) (*model.Resource, error)
	ListActive(ctx context.Context) ([]*model.Resource, error)
	Update(ctx context.Context, resourceID string, updates *model.ResourceUpdate) (*model.Resource, error)
	Deactivate(ctx context.Context, resourceID string) (*model.Resource, error)
}

type resourceService struct {
	repo      repository.ResourceRepository
	validator *validator.ResourceValidator
	cfg       *config.Config
}

func NewResourceService(
	repo repository.ResourceRepository,
	validator *validator.ResourceValidator,
	cfg *config.Config,
) ResourceService {
	return &resourceService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *resourceService) Create(ctx context.Context, resource *model.Resource) error {
	s.sanitize(resource)
	resource.IsActive = true

	if err := s.validator.Validate(resource); err != nil {
		s.cfg.Log.Warn("Resource validation failed", "error", err)
		return apperrors.Validation("Resource validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		if errors.Is(err, resourceserrors.ErrDuplicateResourceID) {
			return apperrors.Conflict("A resource with this id already exists")
		}
		s.cfg.Log.Error("Failed to create resource", "resource_id", resource.ResourceID, "error", err)
		return apperrors.Internal("Failed to create resource", err)
	}

	s.cfg.Log.Info("Resource created",
		"resource_id", resource.ResourceID,
		"duration", resource.BookingConfig.Duration,
		"start_time", resource.BookingConfig.StartTime,
		"end_time", resource.BookingConfig.EndTime,
	)
	return nil
}

func (s *resourceService) GetByResourceID(ctx context.Context, resourceID string) (*model.Resource, error) {
	resourceID = sanitizer.NormalizeResourceID(resourceID)
	if resourceID == "" {
		return nil, apperrors.InvalidInput("Resource id cannot be empty")
	}

	resource, err := s.repo.FindByResourceID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", resourceID)
		}
		return nil, apperrors.Internal("Failed to retrieve resource", err)
	}

	return resource, nil
}

func (s *resourceService) ListActive(ctx context.Context) ([]*model.Resource, error) {
	resources, err := s.repo.FindActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list resources", "error", err)
		return nil, apperrors.Internal("Failed to retrieve resources", err)
	}
	return resources, nil
}

func (s *resourceService) Update(ctx context.Context, resourceID string, updates *model.ResourceUpdate) (*model.Resource, error) {
	existing, err := s.GetByResourceID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	merged := s.merge(existing, updates)
	s.sanitize(merged)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Resource update validation failed", "resource_id", resourceID, "error", err)
		return nil, apperrors.Validation("Resource validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, merged.ResourceID, merged); err != nil {
		if errors.Is(err, resourceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", resourceID)
		}
		s.cfg.Log.Error("Failed to update resource", "resource_id", resourceID, "error", err)
		return nil, apperrors.Internal("Failed to update resource", err)
	}

	s.cfg.Log.Info("Resource updated", "resource_id", merged.ResourceID)
	return merged, nil
}

// Deactivate hides a resource from listings without touching its bookings.
func (s *resourceService) Deactivate(ctx context.Context, resourceID string) (*model.Resource, error) {
	inactive := false
	return s.Update(ctx, resourceID, &model.ResourceUpdate{IsActive: &inactive})
}

func (s *resourceService) sanitize(r *model.Resource) {
	r.ResourceID = sanitizer.NormalizeResourceID(r.ResourceID)
	r.Name = sanitizer.NormalizeName(r.Name)
	r.Description = sanitizer.TrimAndNormalize(r.Description)
}

func (s *resourceService) merge(existing *model.Resource, updates *model.ResourceUpdate) *model.Resource {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.BookingConfig != nil {
		merged.BookingConfig = *updates.BookingConfig
	}

	return &merged
}
