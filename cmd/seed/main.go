package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"

	resourceserrors "bookcal/internal/resources/errors"
	"bookcal/internal/resources/repository"
	"bookcal/pkg/config"
	"bookcal/pkg/model"
)

const ServiceName = "seed"

var seedResources = []model.Resource{
	{
		ResourceID:  "room-1",
		Name:        "Meeting Room 1",
		Description: "Main conference room",
		IsActive:    true,
		BookingConfig: model.BookingConfig{
			Duration:  60,
			StartTime: "09:00",
			EndTime:   "17:00",
		},
	},
	{
		ResourceID:  "room-2",
		Name:        "Meeting Room 2",
		Description: "Small meeting room",
		IsActive:    true,
		BookingConfig: model.BookingConfig{
			Duration:  30,
			StartTime: "09:00",
			EndTime:   "17:00",
		},
	},
	{
		ResourceID:  "projector-1",
		Name:        "Projector",
		Description: "Portable projector",
		IsActive:    true,
		BookingConfig: model.BookingConfig{
			Duration:  120,
			StartTime: "10:00",
			EndTime:   "16:00",
		},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load(ServiceName)

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	repo := repository.NewMongoResourceRepository(cfg)
	for i := range seedResources {
		resource := seedResources[i]
		err := repo.Create(ctx, &resource)
		switch {
		case err == nil:
			cfg.Log.Info("Seeded resource", "resource_id", resource.ResourceID, "name", resource.Name)
		case errors.Is(err, resourceserrors.ErrDuplicateResourceID):
			if updateErr := repo.Update(ctx, resource.ResourceID, &resource); updateErr != nil {
				cfg.Log.Fatal("Failed to update existing resource", "resource_id", resource.ResourceID, "error", updateErr)
			}
			cfg.Log.Info("Updated existing resource", "resource_id", resource.ResourceID)
		default:
			cfg.Log.Fatal("Failed to seed resource", "resource_id", resource.ResourceID, "error", err)
		}
	}

	cfg.Log.Info("Seeding complete", "resources", len(seedResources))
}
