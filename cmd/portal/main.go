package main

import (
	authhandler "docportal/internal/auth/handler"
	bookingshandler "docportal/internal/bookings/handler"
	bookingsrepository "docportal/internal/bookings/repository"
	bookingsservice "docportal/internal/bookings/service"
	bookingsvalidator "docportal/internal/bookings/validator"
	cataloghandler "docportal/internal/catalog/handler"
	catalogrepository "docportal/internal/catalog/repository"
	catalogservice "docportal/internal/catalog/service"
	doctorshandler "docportal/internal/doctors/handler"
	doctorsrepository "docportal/internal/doctors/repository"
	doctorsservice "docportal/internal/doctors/service"
	doctorsvalidator "docportal/internal/doctors/validator"
	healthhandler "docportal/internal/health/handler"
	paymentshandler "docportal/internal/payments/handler"
	paymentsrepository "docportal/internal/payments/repository"
	paymentsservice "docportal/internal/payments/service"
	paymentsvalidator "docportal/internal/payments/validator"
	"docportal/internal/payments/stripe"
	usershandler "docportal/internal/users/handler"
	usersrepository "docportal/internal/users/repository"
	usersservice "docportal/internal/users/service"
	usersvalidator "docportal/internal/users/validator"
	"docportal/pkg/app"
	"docportal/pkg/auth"
	"docportal/pkg/config"
	"docportal/pkg/contracts"
	"docportal/pkg/kafka"
	kafka_config "docportal/pkg/kafka/config"
	kafka_middleware "docportal/pkg/kafka/middleware"
	"docportal/pkg/middleware"
)

const ServiceName = "portal-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting doctors portal API")

	handlers := initHandlers(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config) []contracts.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	bookingEvents, paymentEvents := initProducers(cfg)

	usersRepo := usersrepository.NewMongoUserRepository(cfg)
	usersService := usersservice.NewUserService(usersRepo, usersvalidator.NewUserValidator(cfg.Log), cfg)

	requireJWT := middleware.RequireJWT(tokens)
	requireAdmin := middleware.RequireAdmin(usersService)

	bookingsRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	bookingsService := bookingsservice.NewBookingService(
		bookingsRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		bookingEvents,
		cfg,
	)

	catalogRepo := catalogrepository.NewMongoCatalogRepository(cfg)
	catalogService := catalogservice.NewCatalogService(catalogRepo, bookingsRepo, cfg)

	doctorsRepo := doctorsrepository.NewMongoDoctorRepository(cfg)
	doctorsService := doctorsservice.NewDoctorService(doctorsRepo, doctorsvalidator.NewDoctorValidator(cfg.Log), cfg)

	paymentsRepo := paymentsrepository.NewMongoPaymentRepository(cfg)
	paymentsService := paymentsservice.NewPaymentService(
		paymentsRepo,
		bookingsRepo,
		stripe.NewGateway(cfg.StripeSecretKey),
		paymentsvalidator.NewPaymentValidator(cfg.Log),
		paymentEvents,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		healthhandler.NewHealthHandler(cfg),
		cataloghandler.NewCatalogHandler(catalogService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingsService, cfg.Log, requireJWT),
		usershandler.NewUserHandler(usersService, cfg.Log, requireJWT, requireAdmin),
		doctorshandler.NewDoctorHandler(doctorsService, cfg.Log, requireJWT, requireAdmin),
		paymentshandler.NewPaymentHandler(paymentsService, cfg.Log),
		authhandler.NewTokenHandler(tokens, usersService, cfg.Log),
	}
}

// initProducers builds the event producers, or nil ones when Kafka is
// disabled. Services treat a nil producer as "publishing off".
func initProducers(cfg *config.Config) (*kafka.Producer, *kafka.Producer) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka publishing disabled")
		return nil, nil
	}

	kafkaCfg := kafka_config.Load()

	bookingEvents, err := kafka.NewProducer(kafkaCfg, config.TopicBookingCreated, "")
	if err != nil {
		cfg.Log.Fatal("Failed to create booking events producer", "error", err)
	}

	paymentEvents, err := kafka.NewProducer(kafkaCfg, config.TopicPaymentRecorded, "")
	if err != nil {
		cfg.Log.Fatal("Failed to create payment events producer", "error", err)
	}

	if kafkaCfg.EnableMiddleware {
		bookingEvents.Use(kafka_middleware.LoggingProducerMiddleware())
		paymentEvents.Use(kafka_middleware.LoggingProducerMiddleware())
	}

	return bookingEvents, paymentEvents
}
