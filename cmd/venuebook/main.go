package main

import (
	authhandler "venuebook/internal/auth/handler"
	authrepository "venuebook/internal/auth/repository"
	authservice "venuebook/internal/auth/service"
	"venuebook/internal/auth/token"
	bookinghandler "venuebook/internal/bookings/handler"
	bookingrepository "venuebook/internal/bookings/repository"
	bookingservice "venuebook/internal/bookings/service"
	"venuebook/internal/bookings/validator"
	"venuebook/internal/events"
	venuehandler "venuebook/internal/venues/handler"
	venuerepository "venuebook/internal/venues/repository"
	venueservice "venuebook/internal/venues/service"
	"venuebook/pkg/app"
	"venuebook/pkg/config"
	"venuebook/pkg/contracts"
	kafkaconfig "venuebook/pkg/kafka/config"

	"github.com/joho/godotenv"
)

const ServiceName = "venuebook"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Log.Info("Starting venuebook service")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	}()

	tokens := token.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	handlers := initHandlers(cfg, tokens, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(tokens, handlers...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg := kafkaconfig.Load()
	publisher, err := events.NewKafkaPublisher(
		kafkaCfg,
		cfg.BookingEventsTopic,
		cfg.BookingEventsDLQTopic,
		ServiceName,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create event publisher", "error", err)
	}

	cfg.Log.Info("Event publisher initialized", "topic", cfg.BookingEventsTopic)
	return publisher
}

func initHandlers(cfg *config.Config, tokens *token.Manager, publisher events.Publisher) []contracts.Handler {
	userRepo := authrepository.NewMongoUserRepository(cfg)
	authService := authservice.NewAuthService(userRepo, tokens, cfg)

	venueRepo := venuerepository.NewMongoVenueRepository(cfg)
	blockedRepo := venuerepository.NewMongoBlockedDateRepository(cfg)
	venueService := venueservice.NewVenueService(venueRepo, blockedRepo, cfg)

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepository.NewSlotLockRepository(cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		venueService,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		authhandler.NewAuthHandler(authService, cfg.Log),
		venuehandler.NewVenueHandler(venueService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	}
}
