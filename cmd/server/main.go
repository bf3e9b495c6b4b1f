package main

import (
	"github.com/joho/godotenv"

	availabilityhandler "bookcal/internal/availability/handler"
	availabilityservice "bookcal/internal/availability/service"
	bookinghandler "bookcal/internal/bookings/handler"
	bookingrepository "bookcal/internal/bookings/repository"
	bookingservice "bookcal/internal/bookings/service"
	bookingvalidator "bookcal/internal/bookings/validator"
	"bookcal/internal/events"
	resourcehandler "bookcal/internal/resources/handler"
	resourcerepository "bookcal/internal/resources/repository"
	resourceservice "bookcal/internal/resources/service"
	resourcevalidator "bookcal/internal/resources/validator"
	userhandler "bookcal/internal/users/handler"
	userrepository "bookcal/internal/users/repository"
	userservice "bookcal/internal/users/service"
	"bookcal/pkg/app"
	"bookcal/pkg/config"
	"bookcal/pkg/middleware"
)

const ServiceName = "server"

func main() {
	_ = godotenv.Load()
	cfg := config.Load(ServiceName)
	if cfg.JWTSecret == "" {
		cfg.Log.Fatal("JWT_SECRET must be set")
	}

	cfg.Log.Info("Starting booking calendar server")
	cfg.SetMongo()

	publisher := events.NewPublisher(cfg)
	auth := middleware.NewAuthenticator(cfg.JWTSecret, cfg.Log)

	resourceRepo := resourcerepository.NewMongoResourceRepository(cfg)
	resourceSvc := resourceservice.NewResourceService(
		resourceRepo,
		resourcevalidator.NewResourceValidator(cfg.Log),
		cfg,
	)

	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	bookingSvc := bookingservice.NewBookingService(
		bookingRepo,
		resourceRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	availabilitySvc := availabilityservice.NewAvailabilityService(resourceRepo, bookingRepo, cfg)

	userRepo := userrepository.NewMongoUserRepository(cfg)
	userSvc := userservice.NewUserService(userRepo, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		userhandler.NewUserHandler(userSvc, cfg.Log),
		resourcehandler.NewResourceHandler(resourceSvc, auth, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, auth, cfg.Log),
		availabilityhandler.NewAvailabilityHandler(availabilitySvc, auth, cfg.Log),
	)

	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	serverApp.Run()
}
